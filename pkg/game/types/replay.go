package types

// Replay is a recorded session: metadata plus the ordered steps
type Replay struct {
	Config          GridConfig `json:"config"`
	PlayerName      string     `json:"playerName"`
	PlayTimeMillis  int64      `json:"playTimeMillis"`
	CreatedAtMillis int64      `json:"createdAtMillis"`
	Steps           []TimeStep `json:"steps"`
}

// NewReplay returns an empty replay for the given grid
func NewReplay(config GridConfig, createdAtMillis int64) *Replay {
	return &Replay{
		Config:          config,
		CreatedAtMillis: createdAtMillis,
		Steps:           make([]TimeStep, 0),
	}
}

// Copy returns a deep copy of the replay
func (r *Replay) Copy() *Replay {
	if r == nil {
		return &Replay{Steps: make([]TimeStep, 0)}
	}
	steps := make([]TimeStep, len(r.Steps))
	for i, step := range r.Steps {
		steps[i] = step.Copy()
	}
	return &Replay{
		Config:          r.Config,
		PlayerName:      r.PlayerName,
		PlayTimeMillis:  r.PlayTimeMillis,
		CreatedAtMillis: r.CreatedAtMillis,
		Steps:           steps,
	}
}

// AddStep appends a step
func (r *Replay) AddStep(step TimeStep) {
	r.Steps = append(r.Steps, step)
}

// LastStep returns the last step and false if there are no steps
func (r *Replay) LastStep() (TimeStep, bool) {
	if len(r.Steps) == 0 {
		return TimeStep{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

// IsEmpty returns true if the replay has no steps
func (r *Replay) IsEmpty() bool {
	return r == nil || len(r.Steps) == 0
}

// IsComplete returns true if the last step ended the session
func (r *Replay) IsComplete() bool {
	if r == nil {
		return false
	}
	last, ok := r.LastStep()
	return ok && last.Status.IsTerminal()
}

// FinalStatus returns the status of the last step, or ready for an empty replay
func (r *Replay) FinalStatus() GameStatus {
	last, ok := r.LastStep()
	if !ok {
		return GameStatusReady
	}
	return last.Status
}
