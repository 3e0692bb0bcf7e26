package game

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/sweeper/pkg/clock"
	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/game/constants"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/replay"
)

var logger = log.Named("session")

// Session coordinates one game: it gates commands, drives the game clock,
// records every accepted command as one step and reports the outcome.
// A Session is not safe for concurrent use.
type Session struct {
	engine     engine.Engine
	clock      *clock.Clock
	recorder   *replay.Recorder
	highscores HighscoreChecker
	hsTimeout  time.Duration
	period     time.Duration
	config     types.GridConfig
	started    bool
	observers  []Observer
}

// NewSessionOptions contains options for creating a new Session
type NewSessionOptions struct {
	Engine engine.Engine
	// Timer drives the game clock. Defaults to a real timer.
	Timer clock.Timer
	// Highscores is consulted after a won game. Nil disables the check.
	Highscores HighscoreChecker
	// HighscoreTimeout bounds the check, which runs on the caller's goroutine.
	// Defaults to constants.HighscoreCheckTimeout.
	HighscoreTimeout time.Duration
	// TimerPeriod defaults to constants.TimerPeriod
	TimerPeriod time.Duration
}

func NewSession(opts NewSessionOptions) *Session {
	timer := opts.Timer
	if timer == nil {
		timer = clock.NewTimer()
	}
	period := opts.TimerPeriod
	if period <= 0 {
		period = constants.TimerPeriod
	}
	hsTimeout := opts.HighscoreTimeout
	if hsTimeout <= 0 {
		hsTimeout = constants.HighscoreCheckTimeout
	}

	s := &Session{
		engine:     opts.Engine,
		clock:      clock.New(timer),
		recorder:   replay.NewRecorder(),
		highscores: opts.Highscores,
		hsTimeout:  hsTimeout,
		period:     period,
		observers:  make([]Observer, 0, 1),
	}
	s.engine.AddListener(s.recorder)
	s.engine.AddListener(&sessionEngineListener{session: s})
	s.clock.AddObserver(&sessionClockObserver{session: s})
	return s
}

// Start discards any running game and starts a new one on the given grid
func (s *Session) Start(config types.GridConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}

	s.clock.Stop()
	s.recorder.BeginRecording(config)
	if err := s.engine.CreateGrid(config.Width, config.Height, config.Mines); err != nil {
		s.started = false
		return fmt.Errorf("failed to create grid: %w", err)
	}
	s.config = config
	s.started = true
	logger.Debug("Started %s", config)

	for _, o := range s.observers {
		o.OnGridRebuilt(config)
	}
	for _, o := range s.observers {
		o.OnTimeUpdate(0)
	}
	for _, o := range s.observers {
		o.OnRemainingMinesChanged(config.Mines)
	}
	return nil
}

// RevealCell reveals the cell at p
func (s *Session) RevealCell(ctx context.Context, p types.Position) error {
	return s.command(ctx, p, func() error {
		_, err := s.engine.RevealCell(p)
		return err
	})
}

// CycleMark advances the mark of the cell at p
func (s *Session) CycleMark(ctx context.Context, p types.Position) error {
	return s.command(ctx, p, func() error {
		return s.engine.CycleMark(p)
	})
}

func (s *Session) command(ctx context.Context, p types.Position, apply func() error) error {
	if !s.started {
		return fmt.Errorf("no game started")
	}
	before := s.engine.Status()
	if before.IsTerminal() {
		logger.Debug("Ignoring command at %s: game is %s", p, before)
		return nil
	}
	if !p.Within(s.config.Width, s.config.Height) {
		return fmt.Errorf("invalid command: %w", &engine.OutOfBoundsError{Position: p, Width: s.config.Width, Height: s.config.Height})
	}

	clockStatus := s.clock.Status()
	switch clockStatus {
	case clock.StatusStopped:
		s.clock.Start(s.period, 0)
	case clock.StatusPaused:
		s.clock.Resume()
	}

	if err := apply(); err != nil {
		s.recorder.DiscardStep()
		switch clockStatus {
		case clock.StatusStopped:
			s.clock.Stop()
		case clock.StatusPaused:
			s.clock.Pause()
		}
		return fmt.Errorf("failed to apply command at %s: %w", p, err)
	}

	millis := s.clock.Milliseconds()
	s.recorder.FinalizeStep(millis)

	after := s.engine.Status()
	if after == before {
		return nil
	}
	switch after {
	case types.GameStatusLost:
		s.clock.Stop()
		logger.Debug("Lost after %dms", millis)
		for _, o := range s.observers {
			o.OnLost(millis)
		}
	case types.GameStatusWon:
		s.clock.Stop()
		isHighscore := s.checkHighscore(ctx, millis)
		logger.Debug("Won after %dms, highscore=%t", millis, isHighscore)
		for _, o := range s.observers {
			o.OnWon(millis, isHighscore)
		}
	}
	return nil
}

func (s *Session) checkHighscore(ctx context.Context, millis int64) bool {
	if s.highscores == nil || s.config.Difficulty == types.DifficultyCustom {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, s.hsTimeout)
	defer cancel()

	isHighscore, err := s.highscores.IsHighscore(ctx, s.config.Difficulty, millis)
	if err != nil {
		logger.Error("Failed to check highscore: %v", err)
		return false
	}
	return isHighscore
}

// Pause pauses the game clock of a running game
func (s *Session) Pause() {
	if s.engine.Status() != types.GameStatusRunning {
		logger.Debug("Unable to pause: game is %s", s.engine.Status())
		return
	}
	s.clock.Pause()
}

// Resume resumes the game clock of a running game and reports whether it did
func (s *Session) Resume() bool {
	if s.engine.Status() != types.GameStatusRunning || !s.clock.IsPaused() {
		logger.Debug("Unable to resume: game is %s, clock is %s", s.engine.Status(), s.clock.Status())
		return false
	}
	s.clock.Resume()
	return true
}

// Stop stops the game clock
func (s *Session) Stop() {
	s.clock.Stop()
}

// Replay returns a copy of the last completed replay
func (s *Session) Replay() *types.Replay {
	return s.recorder.Replay()
}

// InProgress returns a copy of the replay being recorded
func (s *Session) InProgress() *types.Replay {
	return s.recorder.InProgress()
}

// SetCellSink registers a live-play sink with the engine
func (s *Session) SetCellSink(sink engine.CellSink) error {
	return s.engine.SetCellSink(sink)
}

func (s *Session) AddObserver(o Observer) {
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

func (s *Session) RemoveObserver(o Observer) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Session) Config() types.GridConfig {
	return s.config
}

func (s *Session) Status() types.GameStatus {
	return s.engine.Status()
}

// Clock returns the game clock. The owner calls Tick on it when its channel fires.
func (s *Session) Clock() *clock.Clock {
	return s.clock
}

type sessionEngineListener struct {
	session *Session
}

func (l *sessionEngineListener) OnStatusChanged(types.GameStatus) {}

func (l *sessionEngineListener) OnRemainingMinesChanged(remaining int) {
	for _, o := range l.session.observers {
		o.OnRemainingMinesChanged(remaining)
	}
}

func (l *sessionEngineListener) OnCellChanged(types.Position, types.CellStatus, int) {}

type sessionClockObserver struct {
	session *Session
}

func (o *sessionClockObserver) OnTick(int64) {}

func (o *sessionClockObserver) OnSecond(seconds int64) {
	for _, observer := range o.session.observers {
		observer.OnTimeUpdate(seconds * 1000)
	}
}
