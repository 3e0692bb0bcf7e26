package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
	"github.com/cbodonnell/sweeper/pkg/game/types"
)

const (
	// MessageBufferSize is the number of outgoing messages buffered per
	// connection. It holds a full live grid and a full replay grid of the
	// largest size, so a flood reveal never overflows it.
	MessageBufferSize = 2*constants.MaxGridWidth*constants.MaxGridHeight + 64
)

// Client message types
const (
	MessageTypeClientStart        = "start"
	MessageTypeClientReveal       = "reveal"
	MessageTypeClientMark         = "mark"
	MessageTypeClientPause        = "pause"
	MessageTypeClientResume       = "resume"
	MessageTypeClientSaveReplay   = "save_replay"
	MessageTypeClientLoadReplay   = "load_replay"
	MessageTypeClientPlayReplay   = "play_replay"
	MessageTypeClientPauseReplay  = "pause_replay"
	MessageTypeClientResumeReplay = "resume_replay"
	MessageTypeClientStopReplay   = "stop_replay"
)

// Server message types. Replay playback uses the replay_ prefixed variants
// so a client can show a replay next to a live game.
const (
	MessageTypeServerGrid         = "grid"
	MessageTypeServerTime         = "time"
	MessageTypeServerMines        = "mines"
	MessageTypeServerCell         = "cell"
	MessageTypeServerWon          = "won"
	MessageTypeServerLost         = "lost"
	MessageTypeServerReplayLoaded = "replay_loaded"
	MessageTypeServerReplayGrid   = "replay_grid"
	MessageTypeServerReplayTime   = "replay_time"
	MessageTypeServerReplayMines  = "replay_mines"
	MessageTypeServerReplayCell   = "replay_cell"
	MessageTypeServerReplayEnded  = "replay_ended"
	MessageTypeServerReplaySaved  = "replay_saved"
	MessageTypeServerError        = "error"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals the payload into a message of the given type.
// A nil payload produces a message without one.
func NewMessage(msgType string, payload interface{}) (*Message, error) {
	msg := &Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", msgType, err)
	}
	msg.Payload = b
	return msg, nil
}

// ClientStart starts a new game. Width, Height and Mines are only read for
// the custom difficulty.
type ClientStart struct {
	Difficulty types.Difficulty `json:"difficulty"`
	Width      int              `json:"width,omitempty"`
	Height     int              `json:"height,omitempty"`
	Mines      int              `json:"mines,omitempty"`
}

// ClientCell addresses a reveal or mark command
type ClientCell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ClientSaveReplay struct {
	PlayerName string `json:"playerName"`
}

// ClientLoadReplay loads a stored replay, or the last finished game when GameID is empty
type ClientLoadReplay struct {
	GameID string `json:"gameID,omitempty"`
}

type ServerGrid struct {
	Config types.GridConfig `json:"config"`
}

type ServerTime struct {
	Millis int64 `json:"millis"`
}

type ServerMines struct {
	Remaining int `json:"remaining"`
}

type ServerCell struct {
	X             int              `json:"x"`
	Y             int              `json:"y"`
	Status        types.CellStatus `json:"status"`
	AdjacentMines int              `json:"adjacentMines"`
}

type ServerWon struct {
	Millis      int64 `json:"millis"`
	IsHighscore bool  `json:"isHighscore"`
}

type ServerLost struct {
	Millis int64 `json:"millis"`
}

type ServerReplayLoaded struct {
	Config         types.GridConfig `json:"config"`
	PlayerName     string           `json:"playerName,omitempty"`
	PlayTimeMillis int64            `json:"playTimeMillis"`
	Steps          int              `json:"steps"`
}

type ServerReplaySaved struct {
	GameID string `json:"gameID"`
}

type ServerError struct {
	Command string `json:"command,omitempty"`
	Reason  string `json:"reason"`
}
