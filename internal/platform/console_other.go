//go:build !windows

package platform

// OnConsoleClose is a no-op outside Windows; SIGHUP and SIGTERM arrive
// through os/signal instead.
func OnConsoleClose(func(event string)) error {
	return nil
}
