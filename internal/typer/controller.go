package typer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Norgate-AV/typesim/internal/clock"
	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
)

// ControllerDeps holds the collaborators of a Controller. Gate and Emitter are
// required; everything else has a default.
type ControllerDeps struct {
	Gate     interfaces.PermissionGate
	Emitter  interfaces.KeyEmitter
	Observer interfaces.ProgressObserver
	Sleeper  interfaces.Sleeper // defaults to clock.Real
	Logger   logger.LoggerInterface
	Rand     random.Source

	// Activation is listened to while the controller awaits activation. It may
	// be nil when signals arrive only through Activate.
	Activation interfaces.ActivationSource

	// StartDelay overrides timeouts.StartDelay when non-nil.
	StartDelay *time.Duration
}

// Controller owns the typing lifecycle: Idle, AwaitingActivation(n), Typing
// and Paused. All methods are safe for concurrent use; calls that do not apply
// to the current state are silent no-ops.
type Controller struct {
	gate       interfaces.PermissionGate
	emitter    interfaces.KeyEmitter
	obs        interfaces.ProgressObserver
	sleeper    interfaces.Sleeper
	log        logger.LoggerInterface
	rng        random.Source
	activation interfaces.ActivationSource
	startDelay time.Duration

	// opMu serializes public operations. It is never held while calling into
	// the activation source.
	opMu sync.Mutex

	mu        sync.Mutex
	state     domain.TyperState
	text      []rune
	cfg       settings.Config
	cursor    int
	runID     string
	runGen    uint64
	armGen    uint64
	armCancel context.CancelFunc
	runCancel context.CancelFunc
	runDone   chan struct{}
	engine    *Engine
	idle      chan struct{}
	lastErr   error
}

// NewController creates an idle Controller.
func NewController(deps ControllerDeps) *Controller {
	c := &Controller{
		gate:       deps.Gate,
		emitter:    deps.Emitter,
		obs:        deps.Observer,
		sleeper:    deps.Sleeper,
		log:        deps.Logger,
		rng:        deps.Rand,
		activation: deps.Activation,
		startDelay: timeouts.StartDelay,
		state:      domain.Idle,
	}

	if c.obs == nil {
		c.obs = nopObserver{}
	}

	if c.sleeper == nil {
		c.sleeper = clock.Real{}
	}

	if c.log == nil {
		c.log = logger.NewNoOpLogger()
	}

	if c.rng == nil {
		c.rng = random.NewFromTime()
	}

	if deps.StartDelay != nil {
		c.startDelay = *deps.StartDelay
	}

	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() domain.TyperState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cursor returns the saved resume position. It is only updated while no run
// is in progress.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Start arms a new run over text. It fails with ErrPermissionDenied when the
// gate refuses and with a settings validation error for an invalid cfg; in
// both cases the state is unchanged. Start while a run is active does nothing.
func (c *Controller) Start(text string, cfg settings.Config) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State().IsActive() {
		c.log.Debug("Start ignored, typer already active", slog.String("state", c.State().String()))
		return nil
	}

	if !c.gate.IsGranted() {
		c.log.Warn("Keystroke injection permission not granted")
		return ErrPermissionDenied
	}

	if err := settings.Validate(cfg); err != nil {
		return fmt.Errorf("invalid typing settings: %w", err)
	}

	c.mu.Lock()
	c.text = []rune(NormalizeText(text))
	c.cfg = cfg
	c.cursor = 0
	c.runID = uuid.NewString()
	c.lastErr = nil
	c.idle = make(chan struct{})
	c.state = domain.AwaitingActivation(0)
	c.armLocked()
	runID, n := c.runID, len(c.text)
	c.mu.Unlock()

	c.log.Debug("Run armed",
		slog.String("run", runID),
		slog.Int("chars", n),
		slog.String("preset", cfg.Name),
	)

	c.obs.OnStateChange(domain.AwaitingActivation(0))
	c.obs.OnProgress(0, 0)
	c.obs.OnMessage(fmt.Sprintf("Waiting for %d activations...", timeouts.ActivationSignals))

	return nil
}

// Activate counts one activation signal. The final signal starts typing from
// the saved cursor.
func (c *Controller) Activate() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.activate()
}

func (c *Controller) activate() {
	c.mu.Lock()
	if c.state.Phase != domain.PhaseAwaitingActivation {
		c.mu.Unlock()
		return
	}

	n := c.state.Signals + 1
	if n < timeouts.ActivationSignals {
		c.state = domain.AwaitingActivation(n)
		c.mu.Unlock()

		c.obs.OnStateChange(domain.AwaitingActivation(n))
		c.obs.OnMessage(fmt.Sprintf("Activation %d/%d", n, timeouts.ActivationSignals))
		return
	}

	c.disarmLocked()
	c.state = domain.Typing
	cursor := c.cursor
	launch := c.beginRunLocked()
	runID := c.runID
	c.mu.Unlock()

	c.log.Debug("Typing started", slog.String("run", runID), slog.Int("cursor", cursor))

	c.obs.OnStateChange(domain.Typing)
	if cursor > 0 {
		c.obs.OnMessage(fmt.Sprintf("Resuming from character %d", cursor))
	} else {
		c.obs.OnMessage("Typing...")
	}

	launch()
}

// Pause stops typing at a character boundary and saves the cursor.
func (c *Controller) Pause() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.state.Phase != domain.PhaseTyping {
		c.mu.Unlock()
		return
	}

	c.state = domain.Paused
	eng, cancel, done := c.engine, c.runCancel, c.runDone
	c.mu.Unlock()

	eng.SetPaused(true)
	cancel()
	<-done

	c.mu.Lock()
	if c.state.Phase != domain.PhasePaused {
		// The run finished or failed before it saw the cancellation.
		c.mu.Unlock()
		return
	}
	cursor, runID := c.cursor, c.runID
	c.mu.Unlock()

	c.log.Debug("Typing paused", slog.String("run", runID), slog.Int("cursor", cursor))

	c.obs.OnStateChange(domain.Paused)
	c.obs.OnMessage(fmt.Sprintf("Paused at character %d", cursor))
}

// Resume re-arms a paused run. A fresh set of activation signals is needed.
func (c *Controller) Resume() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.state.Phase != domain.PhasePaused {
		c.mu.Unlock()
		return
	}

	c.state = domain.AwaitingActivation(0)
	c.armLocked()
	cursor := c.cursor
	c.mu.Unlock()

	c.obs.OnStateChange(domain.AwaitingActivation(0))
	c.obs.OnMessage(fmt.Sprintf("Resuming at character %d: waiting for %d activations...", cursor, timeouts.ActivationSignals))
}

// Stop abandons the current run from any active state. The saved cursor is
// discarded.
func (c *Controller) Stop() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if !c.state.IsActive() {
		c.mu.Unlock()
		return
	}

	// Orphan the run so its completion is ignored.
	c.runGen++
	cancel, done := c.runCancel, c.runDone
	runID := c.runID
	idle := c.toIdleLocked(nil)
	c.mu.Unlock()

	defer closeIdle(idle)

	if cancel != nil {
		cancel()
		<-done
	}

	c.log.Debug("Typing stopped", slog.String("run", runID))

	c.obs.OnStateChange(domain.Idle)
	c.obs.OnProgress(0, 0)
	c.obs.OnMessage("Stopped")
}

// Wait blocks until the controller returns to Idle and reports why the run
// ended: nil for completion or Stop, an *EmissionError for a failed emission.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	if idle != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle:
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// beginRunLocked prepares a run and returns the function that starts its
// goroutine. Callers hold mu and launch after releasing it.
func (c *Controller) beginRunLocked() func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.runGen++
	gen := c.runGen

	eng := NewEngine(c.text, c.cfg, c.cursor, EngineDeps{
		Emitter:    c.emitter,
		Sleeper:    c.sleeper,
		Observer:   c.obs,
		Logger:     c.log,
		Rand:       c.rng,
		StartDelay: c.startDelay,
	})

	c.engine = eng
	c.runCancel = cancel
	c.runDone = done

	return func() {
		go func() {
			defer close(done)
			defer cancel()

			err := eng.Run(ctx)
			c.runFinished(gen, eng, err)
		}()
	}
}

// runFinished runs on the run goroutine after the engine returns.
func (c *Controller) runFinished(gen uint64, eng *Engine, err error) {
	c.mu.Lock()
	if gen != c.runGen {
		c.mu.Unlock()
		return
	}

	c.cursor = eng.Cursor()
	c.engine = nil
	c.runCancel = nil

	var emitErr *EmissionError

	switch {
	case err == nil:
		n, runID := len(c.text), c.runID
		stats := eng.Stats()
		idle := c.toIdleLocked(nil)
		c.mu.Unlock()

		defer closeIdle(idle)

		c.log.Debug("Typing finished",
			slog.String("run", runID),
			slog.Int("keystrokes", stats.Keystrokes),
			slog.Int("typos", stats.Typos),
		)

		c.obs.OnStateChange(domain.Idle)
		c.obs.OnMessage(fmt.Sprintf("Finished typing %d characters", n))

	case errors.As(err, &emitErr):
		runID := c.runID
		idle := c.toIdleLocked(err)
		c.mu.Unlock()

		defer closeIdle(idle)

		c.log.Error("Typing aborted", slog.String("run", runID), slog.Any("error", err))

		c.obs.OnStateChange(domain.Idle)
		c.obs.OnProgress(0, 0)
		c.obs.OnMessage(fmt.Sprintf("Typing failed: %v", err))

	default:
		// Cancelled by Pause, which completes the transition.
		c.mu.Unlock()
	}
}

// armLocked starts listening to the activation source for the new arming.
// Callers hold mu.
func (c *Controller) armLocked() {
	c.disarmLocked()
	c.armGen++

	if c.activation == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.armCancel = cancel

	go c.activation.Listen(ctx, c.fireFor(c.armGen))
}

func (c *Controller) disarmLocked() {
	if c.armCancel != nil {
		c.armCancel()
		c.armCancel = nil
	}
}

// fireFor returns an activation callback that only counts while the arming it
// was created for is still current.
func (c *Controller) fireFor(gen uint64) func() {
	return func() {
		c.opMu.Lock()
		defer c.opMu.Unlock()

		c.mu.Lock()
		stale := gen != c.armGen
		c.mu.Unlock()

		if stale {
			return
		}

		c.activate()
	}
}

// toIdleLocked resets the controller to Idle and hands back the idle channel
// for the caller to close once observers have been notified.
func (c *Controller) toIdleLocked(err error) chan struct{} {
	c.disarmLocked()
	c.armGen++
	c.state = domain.Idle
	c.cursor = 0
	c.engine = nil
	c.runCancel = nil
	c.runDone = nil
	c.lastErr = err

	idle := c.idle
	c.idle = nil
	return idle
}

func closeIdle(idle chan struct{}) {
	if idle != nil {
		close(idle)
	}
}
