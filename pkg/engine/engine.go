// Package engine wires the verification evaluator, anti-cheat
// correlator, hint tracker, event broadcaster, and solve sinks
// into the single façade request handlers talk to.
package engine

import (
	"context"
	"time"

	"digital.vasic.trainer/pkg/anticheat"
	"digital.vasic.trainer/pkg/broadcast"
	"digital.vasic.trainer/pkg/hint"
	"digital.vasic.trainer/pkg/logging"
	"digital.vasic.trainer/pkg/metrics"
	"digital.vasic.trainer/pkg/profile"
	"digital.vasic.trainer/pkg/scenario"
	"digital.vasic.trainer/pkg/sink"
	"digital.vasic.trainer/pkg/solve"
)

// Config tunes the engine's internal components. Zero values
// fall back to package defaults.
type Config struct {
	// HintSchedule drives hint progression.
	HintSchedule hint.Schedule

	// AntiCheatWindow is the interaction history size per
	// scenario.
	AntiCheatWindow int

	// BroadcastBuffer is the per-subscriber event buffer.
	BroadcastBuffer int
}

// Option customizes engine construction.
type Option func(*Engine)

// WithSink attaches a best-effort solve sink.
func WithSink(s sink.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithMetrics attaches a metrics implementation.
func WithMetrics(m metrics.EngineMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine is the verification and progress-tracking core.
type Engine struct {
	registry    scenario.Registry
	profiles    solve.ProfileSource
	store       *solve.Store
	evaluator   *solve.Evaluator
	correlator  *anticheat.Correlator
	hints       *hint.Tracker
	broadcaster *broadcast.Broadcaster

	sink    sink.Sink
	metrics metrics.EngineMetrics
	logger  logging.Logger
}

// New builds an engine over a loaded registry and profile
// source.
func New(
	reg scenario.Registry,
	profiles solve.ProfileSource,
	cfg Config,
	opts ...Option,
) *Engine {
	e := &Engine{
		registry: reg,
		profiles: profiles,
		sink:     sink.NoopSink{},
		metrics:  metrics.NoopMetrics{},
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	schedule := cfg.HintSchedule
	if schedule == (hint.Schedule{}) {
		schedule = hint.DefaultSchedule()
	}

	e.store = solve.NewStore(reg)
	e.evaluator = solve.NewEvaluator(reg, profiles, e.store)
	e.correlator = anticheat.NewCorrelator(
		reg, cfg.AntiCheatWindow, e.logger,
	)
	e.hints = hint.NewTracker(reg, e.store, schedule)
	e.broadcaster = broadcast.NewBroadcaster(cfg.BroadcastBuffer)

	return e
}

// Start publishes the engine-started event and primes the
// active-scenarios gauge. Call it after observers have
// subscribed so none of them miss the restart marker.
func (e *Engine) Start() {
	e.metrics.SetActiveScenarios(e.activeCount())
	e.broadcaster.Publish(broadcast.Event{
		Type: broadcast.EventEngineStarted,
	})
	e.logger.Info("engine started",
		logging.IntField("scenarios", e.registry.Count()),
		logging.IntField("active", e.activeCount()),
	)
}

// Attempt runs one verification attempt for the scenario and
// orchestrates everything that follows a first solve:
// anti-cheat classification, solve-sink recording, and event
// broadcast. Hint progression advances on every attempt that
// reached predicate evaluation.
func (e *Engine) Attempt(
	ctx context.Context,
	key scenario.Key,
	pred solve.Predicate,
) (solve.Outcome, error) {
	start := time.Now()
	res, err := e.evaluator.Attempt(key, pred)
	if err != nil {
		return "", err
	}
	e.metrics.RecordAttempt(
		string(key), string(res.Outcome), time.Since(start),
	)

	if res.Outcome == solve.OutcomeInactive {
		return res.Outcome, nil
	}

	e.advanceHints(key, res.Scenario)

	if res.Outcome == solve.OutcomeFirstSolve {
		e.finalizeSolve(ctx, res)
	}

	return res.Outcome, nil
}

// finalizeSolve annotates, broadcasts, and durably records a
// won solve transition. Nothing in here can fail the solve.
func (e *Engine) finalizeSolve(
	ctx context.Context, res solve.Result,
) {
	key := res.Scenario.Key

	classification := e.correlator.Classify(key)
	if err := e.store.SetClassification(
		key, classification,
	); err != nil {
		classification = solve.ClassificationSuspect
	}
	e.metrics.RecordSolve(string(key), string(classification))

	e.logger.Info("scenario solved",
		logging.StringField("key", string(key)),
		logging.StringField(
			"classification", string(classification),
		),
		logging.Int64Field("attempts", res.Attempts),
	)

	e.broadcaster.Publish(broadcast.Event{
		Type:           broadcast.EventScenarioSolved,
		ScenarioKey:    key,
		Name:           res.Scenario.Name,
		Classification: string(classification),
		Attempts:       res.Attempts,
		Timestamp:      res.SolvedAt,
	})

	err := e.sink.RecordSolve(ctx, sink.SolveRecord{
		Key:            key,
		Name:           res.Scenario.Name,
		Category:       res.Scenario.Category,
		Difficulty:     res.Scenario.Difficulty,
		SolvedAt:       res.SolvedAt,
		Classification: classification,
		Attempts:       res.Attempts,
	})
	if err != nil {
		e.logger.Warn("solve sink failed",
			logging.StringField("key", string(key)),
			logging.ErrorField(err),
		)
	}
}

// advanceHints feeds the attempt into the hint schedule and
// broadcasts any hints it released.
func (e *Engine) advanceHints(
	key scenario.Key, sc *scenario.Scenario,
) {
	unlocked, err := e.hints.RecordAttempt(key)
	if err != nil {
		return
	}

	for _, u := range unlocked {
		e.metrics.RecordHintUnlock(string(key))
		e.broadcaster.Publish(broadcast.Event{
			Type:        broadcast.EventHintUnlocked,
			ScenarioKey: key,
			Name:        sc.Name,
			HintIndex:   u.Index,
			Hint:        u.Text,
		})
	}
}

// RecordInteraction forwards interaction telemetry to the
// anti-cheat correlator. Best-effort: unknown keys are
// dropped.
func (e *Engine) RecordInteraction(
	key scenario.Key, viaIntendedPath bool,
) {
	e.correlator.RecordInteraction(key, viaIntendedPath)
}

// Hints returns the hints currently unlocked for the scenario.
func (e *Engine) Hints(key scenario.Key) ([]string, error) {
	return e.hints.Unlocked(key)
}

// SolveState returns a read-only snapshot of the scenario's
// solve state.
func (e *Engine) SolveState(
	key scenario.Key,
) (solve.Snapshot, error) {
	return e.store.Get(key)
}

// Interactions returns the scenario's retained interaction
// window, oldest first. Intended for instructor reports.
func (e *Engine) Interactions(
	key scenario.Key,
) []anticheat.Interaction {
	return e.correlator.Window(key)
}

// Subscribe registers an observer for future engine events.
func (e *Engine) Subscribe() *broadcast.Subscription {
	return e.broadcaster.Subscribe()
}

// Close shuts down the broadcaster and the solve sink.
func (e *Engine) Close() {
	e.broadcaster.Close()
	if err := e.sink.Close(); err != nil {
		e.logger.Warn("failed to close solve sink",
			logging.ErrorField(err),
		)
	}
}

func (e *Engine) activeCount() int {
	p := e.profiles.Current()
	count := 0
	for _, sc := range e.registry.List() {
		active, err := profile.IsActive(sc, p)
		if err == nil && active {
			count++
		}
	}
	return count
}
