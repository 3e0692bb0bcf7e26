package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/sweeper/pkg/clock"
	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/game/constants"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
)

var playerLogger = log.Named("player")

// Observer receives playback events
type Observer interface {
	OnGridRebuilt(config types.GridConfig)
	OnTimeUpdate(millis int64)
	OnRemainingMinesChanged(remaining int)
	OnReplayEnded()
}

// ReplayLoader loads stored replays by ID
type ReplayLoader interface {
	LoadReplay(ctx context.Context, id string) (*types.Replay, error)
}

// Player re-emits the steps of a replay through cell sinks at the times
// they were recorded, measured on its own clock.
// A Player is not safe for concurrent use.
type Player struct {
	clock     *clock.Clock
	period    time.Duration
	replay    *types.Replay
	sinks     []engine.CellSink
	cursor    int
	observers []Observer
}

// NewPlayerOptions contains options for creating a new Player
type NewPlayerOptions struct {
	// Timer drives the playback clock. Defaults to a real timer.
	Timer clock.Timer
	// TimerPeriod is the playback tick period. Defaults to constants.TimerPeriod.
	TimerPeriod time.Duration
}

func NewPlayer(opts NewPlayerOptions) *Player {
	timer := opts.Timer
	if timer == nil {
		timer = clock.NewTimer()
	}
	period := opts.TimerPeriod
	if period <= 0 {
		period = constants.TimerPeriod
	}

	p := &Player{
		clock:     clock.New(timer),
		period:    period,
		observers: make([]Observer, 0, 1),
	}
	p.clock.AddObserver(&playerClockObserver{player: p})
	return p
}

// Load stops any playback and takes a copy of the replay
func (p *Player) Load(replay *types.Replay) error {
	if replay == nil {
		return fmt.Errorf("replay is nil")
	}
	if err := replay.Config.Validate(); err != nil {
		return fmt.Errorf("invalid replay grid: %w", err)
	}

	p.Stop()
	p.replay = replay.Copy()
	p.sinks = make([]engine.CellSink, replay.Config.Cells())
	p.cursor = 0
	playerLogger.Debug("Loaded replay of %s by %q with %d steps", replay.Config, replay.PlayerName, len(replay.Steps))
	return nil
}

// LoadByID loads a stored replay through the loader
func (p *Player) LoadByID(ctx context.Context, loader ReplayLoader, id string) error {
	replay, err := loader.LoadReplay(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load replay %s: %w", id, err)
	}
	return p.Load(replay)
}

// RegisterCellSink stores the sink at its position on the loaded grid
func (p *Player) RegisterCellSink(sink engine.CellSink) error {
	if p.replay == nil {
		return fmt.Errorf("no replay loaded")
	}
	pos := sink.Position()
	config := p.replay.Config
	if !pos.Within(config.Width, config.Height) {
		return &engine.OutOfBoundsError{Position: pos, Width: config.Width, Height: config.Height}
	}
	p.sinks[p.index(pos)] = sink
	return nil
}

// Play starts playback from the first step
func (p *Player) Play() {
	if p.replay.IsEmpty() {
		playerLogger.Debug("Nothing to play")
		return
	}

	p.clock.Stop()
	p.cursor = 0

	config := p.replay.Config
	for _, o := range p.observers {
		o.OnGridRebuilt(config)
	}
	for _, o := range p.observers {
		o.OnTimeUpdate(0)
	}
	for _, o := range p.observers {
		o.OnRemainingMinesChanged(config.Mines)
	}

	p.clock.Start(p.period, 0)
}

func (p *Player) Pause() {
	p.clock.Pause()
}

func (p *Player) Resume() {
	p.clock.Resume()
}

// Stop stops playback. It is safe to call in any state.
func (p *Player) Stop() {
	p.clock.Stop()
}

// IsLoaded returns true once a replay with at least one step has been loaded
func (p *Player) IsLoaded() bool {
	return !p.replay.IsEmpty()
}

func (p *Player) IsStopped() bool {
	return p.clock.IsStopped()
}

func (p *Player) IsPlaying() bool {
	return p.clock.IsRunning()
}

func (p *Player) IsPaused() bool {
	return p.clock.IsPaused()
}

// Clock returns the playback clock. The owner calls Tick on it when its channel fires.
func (p *Player) Clock() *clock.Clock {
	return p.clock
}

// Replay returns a copy of the loaded replay
func (p *Player) Replay() *types.Replay {
	return p.replay.Copy()
}

func (p *Player) AddObserver(o Observer) {
	for _, existing := range p.observers {
		if existing == o {
			return
		}
	}
	p.observers = append(p.observers, o)
}

func (p *Player) RemoveObserver(o Observer) {
	for i, existing := range p.observers {
		if existing == o {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// dispatch delivers every step recorded at or before millis
func (p *Player) dispatch(millis int64) {
	steps := p.replay.Steps
	for p.cursor < len(steps) && steps[p.cursor].ElapsedMillis <= millis {
		step := steps[p.cursor]
		for _, o := range p.observers {
			o.OnRemainingMinesChanged(step.RemainingMines)
		}
		for _, change := range step.Changes {
			p.deliver(change)
		}
		p.cursor++
	}

	if p.cursor >= len(steps) {
		p.clock.Stop()
		playerLogger.Debug("Replay ended at %dms", millis)
		for _, o := range p.observers {
			o.OnReplayEnded()
		}
	}
}

func (p *Player) deliver(change types.CellChange) {
	config := p.replay.Config
	if !change.Position.Within(config.Width, config.Height) {
		playerLogger.Warn("Skipping change at %s outside the %dx%d grid", change.Position, config.Width, config.Height)
		return
	}
	sink := p.sinks[p.index(change.Position)]
	if sink == nil {
		playerLogger.Warn("No cell sink registered at %s", change.Position)
		return
	}
	sink.UpdateCell(change.Status, change.AdjacentMines)
}

func (p *Player) index(pos types.Position) int {
	return pos.Y*p.replay.Config.Width + pos.X
}

type playerClockObserver struct {
	player *Player
}

func (o *playerClockObserver) OnTick(milliseconds int64) {
	o.player.dispatch(milliseconds)
}

func (o *playerClockObserver) OnSecond(seconds int64) {
	for _, observer := range o.player.observers {
		observer.OnTimeUpdate(seconds * 1000)
	}
}
