package game

import (
	"context"
	"fmt"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/queue"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/workers"
)

// Handler receives the results of commands that are not reported through
// the session or player observers
type Handler interface {
	// OnCommandError is called on the runner goroutine for a rejected command
	OnCommandError(command interface{}, err error)
	// OnReplayLoaded is called on the runner goroutine after the player loaded a replay
	OnReplayLoaded(replay *types.Replay)
	// OnReplaySaved is called on the save worker goroutine
	OnReplaySaved(gameID string, err error)
}

// Runner is the single goroutine that owns a session and a replay player.
// It serializes queued commands with the ticks of both clocks.
type Runner struct {
	session        *Session
	player         *replay.Player
	commandQueue   queue.Queue
	replayLoader   replay.ReplayLoader
	saveReplayChan chan<- workers.SaveReplayRequest
	handler        Handler
}

// NewRunnerOptions contains options for creating a new Runner
type NewRunnerOptions struct {
	Session      *Session
	Player       *replay.Player
	CommandQueue queue.Queue
	// ReplayLoader loads stored replays by ID. Nil disables loading by ID.
	ReplayLoader replay.ReplayLoader
	// SaveReplayChan receives save requests. Nil disables saving.
	SaveReplayChan chan<- workers.SaveReplayRequest
	// Handler defaults to logging
	Handler Handler
}

func NewRunner(opts NewRunnerOptions) *Runner {
	handler := opts.Handler
	if handler == nil {
		handler = &logHandler{}
	}
	return &Runner{
		session:        opts.Session,
		player:         opts.Player,
		commandQueue:   opts.CommandQueue,
		replayLoader:   opts.ReplayLoader,
		saveReplayChan: opts.SaveReplayChan,
		handler:        handler,
	}
}

// Start runs the loop until the context is cancelled. Both clocks are
// stopped before it returns.
func (r *Runner) Start(ctx context.Context) error {
	defer func() {
		r.session.Stop()
		r.player.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.session.Clock().C():
			r.session.Clock().Tick()
		case <-r.player.Clock().C():
			r.player.Clock().Tick()
		case <-r.commandQueue.Ready():
			r.processCommands(ctx)
		}
	}
}

// processCommands processes all pending commands in the queue
func (r *Runner) processCommands(ctx context.Context) {
	pending, err := r.commandQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pending {
		if err := r.handleCommand(ctx, item); err != nil {
			r.handler.OnCommandError(item, err)
		}
	}
}

func (r *Runner) handleCommand(ctx context.Context, item interface{}) error {
	switch command := item.(type) {
	case *types.StartCommand:
		return r.session.Start(command.Config)
	case *types.RevealCellCommand:
		return r.session.RevealCell(ctx, command.Position)
	case *types.CycleMarkCommand:
		return r.session.CycleMark(ctx, command.Position)
	case *types.PauseCommand:
		r.session.Pause()
	case *types.ResumeCommand:
		r.session.Resume()
	case *types.SaveReplayCommand:
		return r.saveReplay(command)
	case *types.LoadReplayCommand:
		return r.loadReplay(ctx, command)
	case *types.PlayReplayCommand:
		if !r.player.IsLoaded() {
			return fmt.Errorf("no replay loaded")
		}
		r.session.Pause()
		r.player.Play()
	case *types.PauseReplayCommand:
		r.player.Pause()
	case *types.ResumeReplayCommand:
		r.player.Resume()
	case *types.StopReplayCommand:
		r.player.Stop()
	default:
		return fmt.Errorf("unhandled command type: %T", item)
	}
	return nil
}

func (r *Runner) saveReplay(command *types.SaveReplayCommand) error {
	if r.saveReplayChan == nil {
		return fmt.Errorf("saving replays is disabled")
	}
	completed := r.session.Replay()
	if completed.FinalStatus() != types.GameStatusWon {
		return fmt.Errorf("no won game to save")
	}
	completed.PlayerName = command.PlayerName

	saveRequest := workers.SaveReplayRequest{
		Replay:   completed,
		Callback: r.handler.OnReplaySaved,
	}
	select {
	case r.saveReplayChan <- saveRequest:
		return nil
	default:
		return fmt.Errorf("save queue is full")
	}
}

func (r *Runner) loadReplay(ctx context.Context, command *types.LoadReplayCommand) error {
	switch {
	case command.Replay != nil:
		if err := r.player.Load(command.Replay); err != nil {
			return err
		}
	case command.GameID != "":
		if r.replayLoader == nil {
			return fmt.Errorf("loading stored replays is disabled")
		}
		if err := r.player.LoadByID(ctx, r.replayLoader, command.GameID); err != nil {
			return err
		}
	default:
		completed := r.session.Replay()
		if completed.IsEmpty() {
			return fmt.Errorf("no completed game to load")
		}
		if err := r.player.Load(completed); err != nil {
			return err
		}
	}
	r.handler.OnReplayLoaded(r.player.Replay())
	return nil
}

type logHandler struct{}

func (h *logHandler) OnCommandError(command interface{}, err error) {
	log.Warn("Command %T failed: %v", command, err)
}

func (h *logHandler) OnReplayLoaded(replay *types.Replay) {
	log.Debug("Loaded replay of %s with %d steps", replay.Config, len(replay.Steps))
}

func (h *logHandler) OnReplaySaved(gameID string, err error) {
	if err != nil {
		log.Warn("Replay was not saved: %v", err)
		return
	}
	log.Debug("Saved replay %s", gameID)
}
