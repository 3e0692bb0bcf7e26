package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/repositories"
)

const (
	// DefaultSaveTimeout bounds a single save
	DefaultSaveTimeout = 5 * time.Second
)

type SaveReplayWorker struct {
	repository     repositories.Repository
	saveReplayChan <-chan SaveReplayRequest
	timeout        time.Duration
}

type NewSaveReplayWorkerOptions struct {
	Repository     repositories.Repository
	SaveReplayChan <-chan SaveReplayRequest
	// Timeout bounds a single save. Defaults to DefaultSaveTimeout.
	Timeout time.Duration
}

type SaveReplayRequest struct {
	Replay *types.Replay
	// Callback is called on the worker goroutine with the stored game ID or the error
	Callback func(gameID string, err error)
}

// NewSaveReplayWorker creates a new SaveReplayWorker.
// The worker stores the replays sent by the session runners so that
// the runners never block on the database.
func NewSaveReplayWorker(opts NewSaveReplayWorkerOptions) *SaveReplayWorker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &SaveReplayWorker{
		repository:     opts.Repository,
		saveReplayChan: opts.SaveReplayChan,
		timeout:        timeout,
	}
}

func (w *SaveReplayWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest, ok := <-w.saveReplayChan:
			if !ok {
				return
			}
			w.saveReplay(ctx, saveRequest)
		}
	}
}

func (w *SaveReplayWorker) saveReplay(ctx context.Context, saveRequest SaveReplayRequest) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	gameID, err := w.repository.SaveReplay(ctx, saveRequest.Replay)
	if err != nil {
		log.Error("Failed to save replay: %v", err)
	} else {
		log.Info("Saved replay %s of %s by %s in %dms", gameID, saveRequest.Replay.Config, saveRequest.Replay.PlayerName, saveRequest.Replay.PlayTimeMillis)
	}
	if saveRequest.Callback != nil {
		saveRequest.Callback(gameID, err)
	}
}
