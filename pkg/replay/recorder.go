package replay

import (
	"time"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
)

var recorderLogger = log.Named("recorder")

// Recorder buffers the notifications of an engine and packages them into
// one TimeStep per finalize call. It implements engine.Listener.
type Recorder struct {
	recording bool
	changes   []types.CellChange
	status    types.GameStatus
	remaining int

	current  *types.Replay
	complete *types.Replay

	now func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		changes:  make([]types.CellChange, 0),
		current:  types.NewReplay(types.GridConfig{}, 0),
		complete: types.NewReplay(types.GridConfig{}, 0),
		now:      time.Now,
	}
}

// BeginRecording discards any buffered or in-progress state and opens a
// fresh replay for the given grid
func (r *Recorder) BeginRecording(config types.GridConfig) {
	r.changes = r.changes[:0]
	r.status = types.GameStatusReady
	r.remaining = config.Mines
	r.current = types.NewReplay(config, r.now().UnixMilli())
	r.recording = true
	recorderLogger.Debug("Recording %s", config)
}

func (r *Recorder) OnStatusChanged(status types.GameStatus) {
	r.status = status
}

func (r *Recorder) OnRemainingMinesChanged(remaining int) {
	r.remaining = remaining
}

func (r *Recorder) OnCellChanged(p types.Position, status types.CellStatus, adjacentMines int) {
	if !r.recording {
		return
	}
	r.changes = append(r.changes, types.NewCellChange(p, status, adjacentMines))
}

// DiscardStep drops the changes buffered since the last finalized step
func (r *Recorder) DiscardStep() {
	if len(r.changes) > 0 {
		recorderLogger.Debug("Discarding %d buffered changes", len(r.changes))
	}
	r.changes = r.changes[:0]
}

// FinalizeStep appends the buffered changes as one step at the given elapsed time
func (r *Recorder) FinalizeStep(millis int64) {
	r.finalize(millis, r.status, r.remaining)
}

// FinalizeStepWithOverride is FinalizeStep with the buffered status and
// remaining mine count replaced by the given values
func (r *Recorder) FinalizeStepWithOverride(millis int64, status types.GameStatus, remaining int) {
	r.finalize(millis, status, remaining)
}

func (r *Recorder) finalize(millis int64, status types.GameStatus, remaining int) {
	if !r.recording {
		recorderLogger.Warn("Unable to finalize step at %dms: not recording", millis)
		return
	}

	if last, ok := r.current.LastStep(); ok && millis < last.ElapsedMillis {
		recorderLogger.Warn("Step at %dms precedes the previous step at %dms", millis, last.ElapsedMillis)
		millis = last.ElapsedMillis
	}

	changes := make([]types.CellChange, len(r.changes))
	copy(changes, r.changes)
	r.changes = r.changes[:0]

	r.current.AddStep(types.TimeStep{
		ElapsedMillis:  millis,
		Status:         status,
		RemainingMines: remaining,
		Changes:        changes,
	})
	recorderLogger.Trace("Step %d: %dms %s with %d changes", len(r.current.Steps), millis, status, len(changes))

	if status.IsTerminal() {
		r.current.PlayTimeMillis = millis
		r.complete = r.current.Copy()
		r.recording = false
		recorderLogger.Debug("Recorded %s game of %d steps in %dms", status, len(r.complete.Steps), millis)
	}
}

// IsRecording returns true between BeginRecording and the terminal step
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// Replay returns a copy of the last completed replay
func (r *Recorder) Replay() *types.Replay {
	return r.complete.Copy()
}

// InProgress returns a copy of the replay being recorded
func (r *Recorder) InProgress() *types.Replay {
	return r.current.Copy()
}
