package game

import (
	"context"
	"errors"
	"testing"
	"time"

	queuemocks "github.com/cbodonnell/sweeper/mocks/github.com/cbodonnell/sweeper/pkg/queue"
	repositorymocks "github.com/cbodonnell/sweeper/mocks/github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/cbodonnell/sweeper/pkg/clock"
	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/queue"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	errors []error
	loaded []*types.Replay
	saved  chan string
}

func (h *recordingHandler) OnCommandError(_ interface{}, err error) {
	h.errors = append(h.errors, err)
}

func (h *recordingHandler) OnReplayLoaded(replay *types.Replay) {
	h.loaded = append(h.loaded, replay)
}

func (h *recordingHandler) OnReplaySaved(gameID string, err error) {
	if h.saved != nil {
		h.saved <- gameID
	}
}

type runnerFixture struct {
	runner         *Runner
	session        *Session
	player         *replay.Player
	commandQueue   *queuemocks.Queue
	repository     *repositorymocks.Repository
	handler        *recordingHandler
	saveReplayChan chan workers.SaveReplayRequest
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	session, _ := newTestSession(t, nil)
	f := &runnerFixture{
		session:        session,
		player:         replay.NewPlayer(replay.NewPlayerOptions{Timer: clock.NewManualTimer()}),
		commandQueue:   queuemocks.NewQueue(t),
		repository:     repositorymocks.NewRepository(t),
		handler:        &recordingHandler{},
		saveReplayChan: make(chan workers.SaveReplayRequest, 1),
	}
	f.runner = NewRunner(NewRunnerOptions{
		Session:        f.session,
		Player:         f.player,
		CommandQueue:   f.commandQueue,
		ReplayLoader:   f.repository,
		SaveReplayChan: f.saveReplayChan,
		Handler:        f.handler,
	})
	return f
}

func (f *runnerFixture) process(commands ...interface{}) {
	f.commandQueue.EXPECT().ReadAllMessages().Return(commands, nil).Once()
	f.runner.processCommands(context.Background())
}

func easyGrid() types.GridConfig {
	return types.GridConfig{Difficulty: types.DifficultyEasy, Width: 4, Height: 4, Mines: 3}
}

func winCommands() []interface{} {
	commands := make([]interface{}, 0, len(safeCells))
	for _, p := range safeCells {
		commands = append(commands, &types.RevealCellCommand{Position: p})
	}
	return commands
}

func TestRunner_processCommands(t *testing.T) {
	tests := []struct {
		name       string
		commands   []interface{}
		wantSteps  int
		wantStatus types.GameStatus
		wantErrors int
	}{
		{
			name:       "no commands",
			commands:   []interface{}{},
			wantStatus: types.GameStatusReady,
		},
		{
			name: "start and play",
			commands: []interface{}{
				&types.StartCommand{Config: easyGrid()},
				&types.CycleMarkCommand{Position: types.NewPosition(3, 3)},
				&types.RevealCellCommand{Position: types.NewPosition(0, 0)},
				&types.PauseCommand{},
				&types.ResumeCommand{},
			},
			wantSteps:  2,
			wantStatus: types.GameStatusRunning,
		},
		{
			name: "rejected commands",
			commands: []interface{}{
				&types.StartCommand{Config: types.NewCustomGridConfig(0, 0, 0)},
				&types.StartCommand{Config: easyGrid()},
				&types.RevealCellCommand{Position: types.NewPosition(9, 9)},
				"not a command",
			},
			wantStatus: types.GameStatusReady,
			wantErrors: 3,
		},
		{
			name: "lost game ignores further commands",
			commands: []interface{}{
				&types.StartCommand{Config: easyGrid()},
				&types.RevealCellCommand{Position: types.NewPosition(2, 0)},
				&types.RevealCellCommand{Position: types.NewPosition(0, 0)},
			},
			wantSteps:  1,
			wantStatus: types.GameStatusLost,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRunnerFixture(t)
			f.process(tt.commands...)

			assert.Equal(t, tt.wantStatus, f.session.Status())
			if tt.wantStatus.IsTerminal() {
				assert.Len(t, f.session.Replay().Steps, tt.wantSteps)
			} else {
				assert.Len(t, f.session.InProgress().Steps, tt.wantSteps)
			}
			assert.Len(t, f.handler.errors, tt.wantErrors)
		})
	}
}

func TestRunnerSaveReplay(t *testing.T) {
	f := newRunnerFixture(t)

	f.process(&types.SaveReplayCommand{PlayerName: "ana"})
	require.Len(t, f.handler.errors, 1, "nothing to save yet")

	f.process(append([]interface{}{&types.StartCommand{Config: easyGrid()}}, winCommands()...)...)
	require.Equal(t, types.GameStatusWon, f.session.Status())

	f.process(&types.SaveReplayCommand{PlayerName: "ana"})
	require.Len(t, f.handler.errors, 1)

	select {
	case saveRequest := <-f.saveReplayChan:
		assert.Equal(t, "ana", saveRequest.Replay.PlayerName)
		assert.True(t, saveRequest.Replay.IsComplete())
		f.handler.saved = make(chan string, 1)
		saveRequest.Callback("game-1", nil)
		assert.Equal(t, "game-1", <-f.handler.saved)
	default:
		t.Fatal("no save request")
	}

	f.process(&types.SaveReplayCommand{PlayerName: "ana"}, &types.SaveReplayCommand{PlayerName: "ana"})
	assert.Len(t, f.handler.errors, 2, "a full save queue rejects the request")
}

func TestRunnerReplayCommands(t *testing.T) {
	f := newRunnerFixture(t)

	f.process(&types.PlayReplayCommand{})
	require.Len(t, f.handler.errors, 1, "nothing loaded")
	f.process(&types.LoadReplayCommand{})
	require.Len(t, f.handler.errors, 2, "no completed game")

	f.process(
		&types.StartCommand{Config: easyGrid()},
		&types.RevealCellCommand{Position: types.NewPosition(0, 0)},
		&types.RevealCellCommand{Position: types.NewPosition(2, 0)},
		&types.LoadReplayCommand{},
		&types.PlayReplayCommand{},
	)
	require.Len(t, f.handler.errors, 2)
	require.Len(t, f.handler.loaded, 1)
	assert.Len(t, f.handler.loaded[0].Steps, 2)
	assert.True(t, f.player.IsPlaying())

	f.process(&types.PauseReplayCommand{})
	assert.True(t, f.player.IsPaused())
	f.process(&types.ResumeReplayCommand{})
	assert.True(t, f.player.IsPlaying())
	f.process(&types.StopReplayCommand{})
	assert.True(t, f.player.IsStopped())
}

func TestRunnerLoadReplayByID(t *testing.T) {
	f := newRunnerFixture(t)
	stored := types.NewReplay(easyGrid(), 0)
	stored.PlayerName = "ana"
	f.repository.EXPECT().LoadReplay(mock.Anything, "game-1").Return(stored, nil).Once()
	f.repository.EXPECT().LoadReplay(mock.Anything, "missing").Return(nil, errors.New("not found")).Once()

	f.process(&types.LoadReplayCommand{GameID: "game-1"}, &types.LoadReplayCommand{GameID: "missing"})

	require.Len(t, f.handler.loaded, 1)
	assert.Equal(t, "ana", f.handler.loaded[0].PlayerName)
	assert.Len(t, f.handler.errors, 1)
}

func TestRunnerPlayPausesSession(t *testing.T) {
	f := newRunnerFixture(t)
	stored := types.NewReplay(easyGrid(), 0)
	stored.AddStep(types.TimeStep{ElapsedMillis: 100, Status: types.GameStatusLost})

	f.process(
		&types.StartCommand{Config: easyGrid()},
		&types.CycleMarkCommand{Position: types.NewPosition(3, 3)},
		&types.LoadReplayCommand{Replay: stored},
		&types.PlayReplayCommand{},
	)

	assert.True(t, f.session.Clock().IsPaused())
	assert.True(t, f.player.IsPlaying())
}

func TestRunnerPlayEmptyReplay(t *testing.T) {
	f := newRunnerFixture(t)

	f.process(
		&types.LoadReplayCommand{Replay: types.NewReplay(easyGrid(), 0)},
		&types.PlayReplayCommand{},
	)

	require.Len(t, f.handler.loaded, 1)
	require.Len(t, f.handler.errors, 1)
	assert.EqualError(t, f.handler.errors[0], "no replay loaded")
	assert.True(t, f.player.IsStopped())
}

type errorChanHandler struct {
	logHandler
	errors chan error
}

func (h *errorChanHandler) OnCommandError(_ interface{}, err error) {
	h.errors <- err
}

func TestRunnerStart(t *testing.T) {
	session := NewSession(NewSessionOptions{
		Engine: engine.NewMatrix(engine.NewMatrixOptions{Mines: testMines}),
	})
	player := replay.NewPlayer(replay.NewPlayerOptions{})
	commandQueue := queue.NewInMemoryQueue(0)
	handler := &errorChanHandler{errors: make(chan error, 1)}
	runner := NewRunner(NewRunnerOptions{
		Session:      session,
		Player:       player,
		CommandQueue: commandQueue,
		Handler:      handler,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Start(ctx)
	}()

	require.NoError(t, commandQueue.Enqueue(&types.StartCommand{Config: easyGrid()}))
	require.NoError(t, commandQueue.Enqueue(&types.RevealCellCommand{Position: types.NewPosition(0, 0)}))
	require.NoError(t, commandQueue.Enqueue(&types.RevealCellCommand{Position: types.NewPosition(9, 9)}))

	select {
	case err := <-handler.errors:
		assert.True(t, engine.IsOutOfBounds(err))
	case <-time.After(time.Second):
		t.Fatal("command was not processed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
	assert.True(t, session.Clock().IsStopped())
}
