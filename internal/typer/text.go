package typer

import "strings"

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText drops a leading byte order mark and folds CRLF and lone CR
// line endings to '\n', so every line break is one logical character.
func NormalizeText(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	return lineEndings.Replace(text)
}
