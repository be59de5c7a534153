package event

// CommandResolvedData is the payload for command.resolved events,
// published once a phrase has been translated but before anything
// runs.
type CommandResolvedData struct {
	Input   string `json:"input"`
	Phrase  string `json:"phrase"`
	Source  string `json:"source"`
	Command string `json:"command"`
	Shell   bool   `json:"shell,omitempty"`
}

// CommandExecutedData is the payload for command.executed events,
// published after the child process finished.
type CommandExecutedData struct {
	Input      string `json:"input"`
	Phrase     string `json:"phrase"`
	Source     string `json:"source"`
	Command    string `json:"command"`
	ExitCode   int    `json:"exitCode"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// CommandUnmatchedData is the payload for command.unmatched events,
// published when no phrase matched the input.
type CommandUnmatchedData struct {
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions,omitempty"`
}
