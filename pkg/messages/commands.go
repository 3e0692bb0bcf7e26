package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/sweeper/pkg/game/types"
)

// ParseCommand converts a client message into the game command it requests
func ParseCommand(msg *Message) (interface{}, error) {
	switch msg.Type {
	case MessageTypeClientStart:
		start := &ClientStart{}
		if err := unmarshalPayload(msg, start); err != nil {
			return nil, err
		}
		config, err := start.GridConfig()
		if err != nil {
			return nil, err
		}
		return &types.StartCommand{Config: config}, nil
	case MessageTypeClientReveal:
		cell := &ClientCell{}
		if err := unmarshalPayload(msg, cell); err != nil {
			return nil, err
		}
		return &types.RevealCellCommand{Position: types.NewPosition(cell.X, cell.Y)}, nil
	case MessageTypeClientMark:
		cell := &ClientCell{}
		if err := unmarshalPayload(msg, cell); err != nil {
			return nil, err
		}
		return &types.CycleMarkCommand{Position: types.NewPosition(cell.X, cell.Y)}, nil
	case MessageTypeClientPause:
		return &types.PauseCommand{}, nil
	case MessageTypeClientResume:
		return &types.ResumeCommand{}, nil
	case MessageTypeClientSaveReplay:
		save := &ClientSaveReplay{}
		if err := unmarshalPayload(msg, save); err != nil {
			return nil, err
		}
		return &types.SaveReplayCommand{PlayerName: save.PlayerName}, nil
	case MessageTypeClientLoadReplay:
		load := &ClientLoadReplay{}
		if len(msg.Payload) > 0 {
			if err := unmarshalPayload(msg, load); err != nil {
				return nil, err
			}
		}
		return &types.LoadReplayCommand{GameID: load.GameID}, nil
	case MessageTypeClientPlayReplay:
		return &types.PlayReplayCommand{}, nil
	case MessageTypeClientPauseReplay:
		return &types.PauseReplayCommand{}, nil
	case MessageTypeClientResumeReplay:
		return &types.ResumeReplayCommand{}, nil
	case MessageTypeClientStopReplay:
		return &types.StopReplayCommand{}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// GridConfig returns the grid the start message asks for
func (s *ClientStart) GridConfig() (types.GridConfig, error) {
	if s.Difficulty == types.DifficultyCustom {
		return types.NewCustomGridConfig(s.Width, s.Height, s.Mines), nil
	}
	return types.NewGridConfig(s.Difficulty)
}

func unmarshalPayload(msg *Message, v interface{}) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("missing payload for %s message", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v", msg.Type, err)
	}
	return nil
}
