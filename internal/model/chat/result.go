package chat

// Result is the composed outcome of one chat exchange, returned once and
// never persisted.
type Result struct {
	Response       string `json:"response"`
	SessionID      string `json:"sessionId"`
	Language       string `json:"language"`
	CrisisDetected bool   `json:"crisisDetected"`
}
