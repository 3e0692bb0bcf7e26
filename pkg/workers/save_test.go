package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	mocks "github.com/cbodonnell/sweeper/mocks/github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type saveResult struct {
	gameID string
	err    error
}

func TestSaveReplayWorker(t *testing.T) {
	replay := types.NewReplay(types.GridConfig{Difficulty: types.DifficultyEasy, Width: 6, Height: 8, Mines: 6}, 0)
	replay.PlayerName = "ana"

	tests := []struct {
		name   string
		setup  func(repository *mocks.Repository)
		wantID string
		hasErr bool
	}{
		{
			name: "saved",
			setup: func(repository *mocks.Repository) {
				repository.EXPECT().SaveReplay(mock.Anything, replay).Return("game-1", nil).Once()
			},
			wantID: "game-1",
		},
		{
			name: "repository error",
			setup: func(repository *mocks.Repository) {
				repository.EXPECT().SaveReplay(mock.Anything, replay).Return("", errors.New("disk full")).Once()
			},
			hasErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := mocks.NewRepository(t)
			tt.setup(repository)

			saveReplayChan := make(chan SaveReplayRequest, 1)
			worker := NewSaveReplayWorker(NewSaveReplayWorkerOptions{
				Repository:     repository,
				SaveReplayChan: saveReplayChan,
			})
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go worker.Start(ctx)

			results := make(chan saveResult, 1)
			saveReplayChan <- SaveReplayRequest{
				Replay: replay,
				Callback: func(gameID string, err error) {
					results <- saveResult{gameID: gameID, err: err}
				},
			}

			select {
			case result := <-results:
				assert.Equal(t, tt.wantID, result.gameID)
				assert.Equal(t, tt.hasErr, result.err != nil)
			case <-time.After(time.Second):
				t.Fatal("no save result")
			}
		})
	}
}

func TestSaveReplayWorkerStopsOnClosedChannel(t *testing.T) {
	saveReplayChan := make(chan SaveReplayRequest)
	worker := NewSaveReplayWorker(NewSaveReplayWorkerOptions{
		Repository:     mocks.NewRepository(t),
		SaveReplayChan: saveReplayChan,
	})

	done := make(chan struct{})
	go func() {
		worker.Start(context.Background())
		close(done)
	}()
	close(saveReplayChan)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
