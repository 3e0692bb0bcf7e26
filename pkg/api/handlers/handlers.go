package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/gorilla/mux"
)

// HighscoreResponse answers whether a time would enter the highscore table
type HighscoreResponse struct {
	Level       types.Difficulty `json:"level"`
	Millis      int64            `json:"millis"`
	IsHighscore bool             `json:"isHighscore"`
}

func HandleListGames(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := parseLevel(w, r)
		if !ok {
			return
		}
		games, err := repository.ListGames(r.Context(), level)
		if err != nil {
			log.Error("failed to list games: %v", err)
			http.Error(w, "Failed to list games", http.StatusInternalServerError)
			return
		}
		writeJSON(w, games)
	}
}

func HandleIsHighscore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := parseLevel(w, r)
		if !ok {
			return
		}
		millis, err := strconv.ParseInt(r.URL.Query().Get("millis"), 10, 64)
		if err != nil || millis < 0 {
			http.Error(w, "millis must be a non-negative integer", http.StatusBadRequest)
			return
		}
		isHighscore, err := repository.IsHighscore(r.Context(), level, millis)
		if err != nil {
			log.Error("failed to check highscore: %v", err)
			http.Error(w, "Failed to check highscore", http.StatusInternalServerError)
			return
		}
		writeJSON(w, &HighscoreResponse{Level: level, Millis: millis, IsHighscore: isHighscore})
	}
}

func HandleGetGame(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := repository.LoadGame(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Game not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load game: %v", err)
			http.Error(w, "Failed to load game", http.StatusInternalServerError)
			return
		}
		writeJSON(w, game)
	}
}

func HandleGetReplay(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		replay, err := repository.LoadReplay(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Game not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load replay: %v", err)
			http.Error(w, "Failed to load replay", http.StatusInternalServerError)
			return
		}
		writeJSON(w, replay)
	}
}

// HandleGetSteps serves the stored steps blob as is
func HandleGetSteps(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		steps, err := repository.LoadSteps(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Game not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load steps: %v", err)
			http.Error(w, "Failed to load steps", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		if _, err := w.Write(steps); err != nil {
			log.Error("failed to write steps: %v", err)
		}
	}
}

func parseLevel(w http.ResponseWriter, r *http.Request) (types.Difficulty, bool) {
	level, err := types.ParseDifficulty(mux.Vars(r)["level"])
	if err != nil {
		http.Error(w, "Unknown level", http.StatusBadRequest)
		return level, false
	}
	if level == types.DifficultyCustom {
		http.Error(w, "Custom games have no highscores", http.StatusBadRequest)
		return level, false
	}
	return level, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
