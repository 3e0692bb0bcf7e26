package types

// Commands are queued by connection readers and consumed by the runner
// goroutine, which owns the session and the replay player.

// StartCommand starts a new session on a grid of the given configuration
type StartCommand struct {
	Config GridConfig
}

// RevealCellCommand reveals the cell at Position
type RevealCellCommand struct {
	Position Position
}

// CycleMarkCommand advances the mark of the cell at Position
type CycleMarkCommand struct {
	Position Position
}

// PauseCommand pauses the session clock
type PauseCommand struct{}

// ResumeCommand resumes the session clock
type ResumeCommand struct{}

// SaveReplayCommand stores the last completed replay under a player name
type SaveReplayCommand struct {
	PlayerName string
}

// LoadReplayCommand loads a replay into the player: the given Replay, else
// the stored replay with GameID, else the last completed game of the session
type LoadReplayCommand struct {
	Replay *Replay
	GameID string
}

// PlayReplayCommand starts playback of the loaded replay
type PlayReplayCommand struct{}

// PauseReplayCommand pauses playback
type PauseReplayCommand struct{}

// ResumeReplayCommand resumes paused playback
type ResumeReplayCommand struct{}

// StopReplayCommand stops playback
type StopReplayCommand struct{}
