package messages

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	easy, err := types.NewGridConfig(types.DifficultyEasy)
	require.NoError(t, err)

	tests := []struct {
		name    string
		msg     *Message
		want    interface{}
		wantErr bool
	}{
		{
			name: "start easy",
			msg:  &Message{Type: MessageTypeClientStart, Payload: json.RawMessage(`{"difficulty":"easy"}`)},
			want: &types.StartCommand{Config: easy},
		},
		{
			name: "start custom",
			msg:  &Message{Type: MessageTypeClientStart, Payload: json.RawMessage(`{"difficulty":"custom","width":4,"height":5,"mines":3}`)},
			want: &types.StartCommand{Config: types.NewCustomGridConfig(4, 5, 3)},
		},
		{
			name:    "start unknown difficulty",
			msg:     &Message{Type: MessageTypeClientStart, Payload: json.RawMessage(`{"difficulty":"insane"}`)},
			wantErr: true,
		},
		{
			name:    "start without payload",
			msg:     &Message{Type: MessageTypeClientStart},
			wantErr: true,
		},
		{
			name: "reveal",
			msg:  &Message{Type: MessageTypeClientReveal, Payload: json.RawMessage(`{"x":1,"y":2}`)},
			want: &types.RevealCellCommand{Position: types.NewPosition(1, 2)},
		},
		{
			name: "mark",
			msg:  &Message{Type: MessageTypeClientMark, Payload: json.RawMessage(`{"x":3,"y":0}`)},
			want: &types.CycleMarkCommand{Position: types.NewPosition(3, 0)},
		},
		{
			name:    "malformed reveal",
			msg:     &Message{Type: MessageTypeClientReveal, Payload: json.RawMessage(`{"x":"one"}`)},
			wantErr: true,
		},
		{
			name: "pause",
			msg:  &Message{Type: MessageTypeClientPause},
			want: &types.PauseCommand{},
		},
		{
			name: "resume",
			msg:  &Message{Type: MessageTypeClientResume},
			want: &types.ResumeCommand{},
		},
		{
			name: "save replay",
			msg:  &Message{Type: MessageTypeClientSaveReplay, Payload: json.RawMessage(`{"playerName":"ana"}`)},
			want: &types.SaveReplayCommand{PlayerName: "ana"},
		},
		{
			name: "load last game",
			msg:  &Message{Type: MessageTypeClientLoadReplay},
			want: &types.LoadReplayCommand{},
		},
		{
			name: "load stored game",
			msg:  &Message{Type: MessageTypeClientLoadReplay, Payload: json.RawMessage(`{"gameID":"abc"}`)},
			want: &types.LoadReplayCommand{GameID: "abc"},
		},
		{
			name: "play replay",
			msg:  &Message{Type: MessageTypeClientPlayReplay},
			want: &types.PlayReplayCommand{},
		},
		{
			name: "pause replay",
			msg:  &Message{Type: MessageTypeClientPauseReplay},
			want: &types.PauseReplayCommand{},
		},
		{
			name: "resume replay",
			msg:  &Message{Type: MessageTypeClientResumeReplay},
			want: &types.ResumeReplayCommand{},
		},
		{
			name: "stop replay",
			msg:  &Message{Type: MessageTypeClientStopReplay},
			want: &types.StopReplayCommand{},
		},
		{
			name:    "unknown",
			msg:     &Message{Type: "jump"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeServerCell, &ServerCell{X: 1, Y: 2, Status: types.CellStatusRevealed, AdjacentMines: 3})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeServerCell, msg.Type)
	assert.JSONEq(t, `{"x":1,"y":2,"status":1,"adjacentMines":3}`, string(msg.Payload))

	msg, err = NewMessage(MessageTypeServerReplayEnded, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"replay_ended"}`, string(b))
}

func TestServerGridEncodesDifficultyByName(t *testing.T) {
	msg, err := NewMessage(MessageTypeServerGrid, &ServerGrid{Config: types.NewCustomGridConfig(4, 4, 3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"config":{"difficulty":"custom","width":4,"height":4,"mines":3}}`, string(msg.Payload))
}
