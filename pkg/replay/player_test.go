package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cbodonnell/sweeper/pkg/clock"
	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	position types.Position
	status   types.CellStatus
	adjacent int
	millis   int64
}

// logSink appends every update to a log shared by all sinks of a grid
type logSink struct {
	position types.Position
	clock    *clock.Clock
	log      *[]delivery
}

func (s *logSink) Position() types.Position {
	return s.position
}

func (s *logSink) UpdateCell(status types.CellStatus, adjacentMines int) {
	var millis int64
	if s.clock != nil {
		millis = s.clock.Milliseconds()
	}
	*s.log = append(*s.log, delivery{position: s.position, status: status, adjacent: adjacentMines, millis: millis})
}

type recordingObserver struct {
	grids     []types.GridConfig
	times     []int64
	remaining []int
	ended     int
}

func (o *recordingObserver) OnGridRebuilt(config types.GridConfig) {
	o.grids = append(o.grids, config)
}

func (o *recordingObserver) OnTimeUpdate(millis int64) {
	o.times = append(o.times, millis)
}

func (o *recordingObserver) OnRemainingMinesChanged(remaining int) {
	o.remaining = append(o.remaining, remaining)
}

func (o *recordingObserver) OnReplayEnded() {
	o.ended++
}

var testMines = []types.Position{
	types.NewPosition(2, 0),
	types.NewPosition(2, 1),
	types.NewPosition(1, 3),
}

type recordingSession struct {
	matrix   *engine.Matrix
	recorder *Recorder
	live     []delivery
}

func newRecordingSession(t *testing.T) *recordingSession {
	config := types.NewCustomGridConfig(4, 4, 3)
	s := &recordingSession{
		matrix:   engine.NewMatrix(engine.NewMatrixOptions{Mines: testMines}),
		recorder: newTestRecorder(),
	}
	require.NoError(t, s.matrix.CreateGrid(config.Width, config.Height, config.Mines))
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			require.NoError(t, s.matrix.SetCellSink(&logSink{position: types.NewPosition(x, y), log: &s.live}))
		}
	}
	s.matrix.AddListener(s.recorder)
	s.recorder.BeginRecording(config)
	return s
}

func (s *recordingSession) mark(t *testing.T, p types.Position, millis int64) {
	require.NoError(t, s.matrix.CycleMark(p))
	s.recorder.FinalizeStep(millis)
}

func (s *recordingSession) reveal(t *testing.T, p types.Position, millis int64) {
	_, err := s.matrix.RevealCell(p)
	require.NoError(t, err)
	s.recorder.FinalizeStep(millis)
}

func newTestPlayer(t *testing.T, replay *types.Replay) (*Player, *recordingObserver, *[]delivery) {
	player := NewPlayer(NewPlayerOptions{Timer: clock.NewManualTimer(), TimerPeriod: 50 * time.Millisecond})
	require.NoError(t, player.Load(replay))

	deliveries := &[]delivery{}
	for y := 0; y < replay.Config.Height; y++ {
		for x := 0; x < replay.Config.Width; x++ {
			sink := &logSink{position: types.NewPosition(x, y), clock: player.Clock(), log: deliveries}
			require.NoError(t, player.RegisterCellSink(sink))
		}
	}
	observer := &recordingObserver{}
	player.AddObserver(observer)
	return player, observer, deliveries
}

func playToEnd(t *testing.T, player *Player) {
	for i := 0; player.IsPlaying(); i++ {
		require.Less(t, i, 10000, "replay did not end")
		player.Clock().Tick()
	}
}

func TestPlayerReplaysLostSessionOnSchedule(t *testing.T) {
	s := newRecordingSession(t)
	for i := 0; i < 11; i++ {
		s.mark(t, types.NewPosition(3, 3), int64(130*(i+1)))
	}
	s.reveal(t, types.NewPosition(2, 0), 130*12)

	replay := s.recorder.Replay()
	require.Len(t, replay.Steps, 12)
	require.Equal(t, types.GameStatusLost, replay.FinalStatus())

	player, observer, deliveries := newTestPlayer(t, replay)
	player.Play()
	assert.True(t, player.IsPlaying())
	playToEnd(t, player)

	require.Len(t, *deliveries, 12)
	for i, d := range *deliveries {
		recorded := replay.Steps[i].ElapsedMillis
		assert.GreaterOrEqual(t, d.millis, recorded, "batch %d dispatched early", i)
		assert.Less(t, d.millis-recorded, int64(50), "batch %d dispatched late", i)
	}
	assert.Equal(t, 1, observer.ended)
	assert.True(t, player.IsStopped())

	player.Clock().Tick()
	assert.Equal(t, 1, observer.ended)
	assert.Len(t, *deliveries, 12)
}

func TestPlayerReproducesLiveUpdates(t *testing.T) {
	s := newRecordingSession(t)
	s.mark(t, types.NewPosition(3, 0), 400)
	s.reveal(t, types.NewPosition(0, 0), 1100)
	s.reveal(t, types.NewPosition(3, 3), 2600)
	s.mark(t, types.NewPosition(3, 0), 2700)
	s.reveal(t, types.NewPosition(2, 1), 3050)

	replay := s.recorder.Replay()
	require.True(t, replay.IsComplete())

	player, observer, deliveries := newTestPlayer(t, replay)
	player.Play()
	playToEnd(t, player)

	require.Len(t, *deliveries, len(s.live))
	for i := range s.live {
		want, got := s.live[i], (*deliveries)[i]
		assert.Equal(t, want.position, got.position)
		assert.Equal(t, want.status, got.status)
		assert.Equal(t, want.adjacent, got.adjacent)
	}

	assert.Equal(t, []types.GridConfig{replay.Config}, observer.grids)
	assert.Equal(t, []int64{0, 1000, 2000, 3000}, observer.times)
	wantRemaining := []int{3}
	for _, step := range replay.Steps {
		wantRemaining = append(wantRemaining, step.RemainingMines)
	}
	assert.Equal(t, wantRemaining, observer.remaining)
}

func TestPlayerReplaysNegativeRemainingMines(t *testing.T) {
	s := newRecordingSession(t)
	for x := 0; x < 4; x++ {
		s.mark(t, types.NewPosition(x, 3), int64(100*(x+1)))
	}
	s.reveal(t, types.NewPosition(2, 0), 800)

	replay := s.recorder.Replay()
	require.Equal(t, -1, replay.Steps[3].RemainingMines)

	b, err := SerializeSteps(replay.Steps)
	require.NoError(t, err)
	replay.Steps, err = DeserializeSteps(b)
	require.NoError(t, err)

	player, observer, _ := newTestPlayer(t, replay)
	player.Play()
	playToEnd(t, player)

	assert.Equal(t, []int{3, 2, 1, 0, -1, -1}, observer.remaining)
}

func TestPlayerPlayWithoutSteps(t *testing.T) {
	player, observer, _ := newTestPlayer(t, types.NewReplay(types.NewCustomGridConfig(4, 4, 3), 0))
	assert.False(t, player.IsLoaded(), "a replay without steps cannot be played")

	player.Play()

	assert.True(t, player.IsStopped())
	assert.Empty(t, observer.grids)
	assert.Equal(t, 0, observer.ended)
}

func TestPlayerPauseResume(t *testing.T) {
	s := newRecordingSession(t)
	s.mark(t, types.NewPosition(3, 3), 100)
	s.reveal(t, types.NewPosition(2, 0), 200)

	player, _, deliveries := newTestPlayer(t, s.recorder.Replay())
	player.Play()
	player.Clock().Tick()
	player.Pause()
	player.Pause()
	assert.True(t, player.IsPaused())

	for i := 0; i < 10; i++ {
		player.Clock().Tick()
	}
	assert.Empty(t, *deliveries)

	player.Resume()
	player.Resume()
	assert.True(t, player.IsPlaying())
	playToEnd(t, player)
	assert.Len(t, *deliveries, 2)
}

func TestPlayerLoadStopsPlayback(t *testing.T) {
	s := newRecordingSession(t)
	s.reveal(t, types.NewPosition(2, 0), 100)
	replay := s.recorder.Replay()

	player, _, _ := newTestPlayer(t, replay)
	player.Play()
	require.True(t, player.IsPlaying())

	require.NoError(t, player.Load(replay))
	assert.True(t, player.IsStopped())
	assert.True(t, player.IsLoaded())

	assert.Error(t, player.Load(nil))
}

func TestPlayerRegisterCellSink(t *testing.T) {
	player := NewPlayer(NewPlayerOptions{Timer: clock.NewManualTimer()})
	assert.False(t, player.IsLoaded())
	assert.Error(t, player.RegisterCellSink(&logSink{}))

	require.NoError(t, player.Load(types.NewReplay(types.NewCustomGridConfig(4, 4, 3), 0)))
	err := player.RegisterCellSink(&logSink{position: types.NewPosition(4, 0)})
	assert.True(t, engine.IsOutOfBounds(err))
}

func TestPlayerSkipsMissingSinks(t *testing.T) {
	s := newRecordingSession(t)
	s.reveal(t, types.NewPosition(0, 0), 100)
	s.reveal(t, types.NewPosition(2, 0), 200)

	player := NewPlayer(NewPlayerOptions{Timer: clock.NewManualTimer()})
	require.NoError(t, player.Load(s.recorder.Replay()))
	deliveries := &[]delivery{}
	require.NoError(t, player.RegisterCellSink(&logSink{position: types.NewPosition(2, 0), log: deliveries}))
	observer := &recordingObserver{}
	player.AddObserver(observer)

	player.Play()
	playToEnd(t, player)

	require.Len(t, *deliveries, 1)
	assert.Equal(t, types.CellStatusExplodedMine, (*deliveries)[0].status)
	assert.Equal(t, 1, observer.ended)
}

type stubLoader struct {
	replays map[string]*types.Replay
}

func (l *stubLoader) LoadReplay(_ context.Context, id string) (*types.Replay, error) {
	replay, ok := l.replays[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return replay, nil
}

func TestPlayerLoadByID(t *testing.T) {
	replay := types.NewReplay(types.NewCustomGridConfig(4, 4, 3), 0)
	replay.PlayerName = "ana"
	loader := &stubLoader{replays: map[string]*types.Replay{"game-1": replay}}
	player := NewPlayer(NewPlayerOptions{Timer: clock.NewManualTimer()})

	require.NoError(t, player.LoadByID(context.Background(), loader, "game-1"))
	assert.Equal(t, "ana", player.Replay().PlayerName)

	assert.Error(t, player.LoadByID(context.Background(), loader, "missing"))
}
