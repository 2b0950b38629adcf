package model

// Suggestion is a single flagged diff line with reviewer feedback
type Suggestion struct {
	Line     string `json:"line" yaml:"line" toml:"line"`
	Feedback string `json:"feedback" yaml:"feedback" toml:"feedback"`
}

// AnalysisResult is the outcome of scanning one diff
type AnalysisResult struct {
	Summary string       `json:"summary" yaml:"summary" toml:"summary"`
	Details []Suggestion `json:"details" yaml:"details" toml:"details"`
}
