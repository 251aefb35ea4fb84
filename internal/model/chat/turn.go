package chat

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a session's history, immutable once appended.
// Ordering is append order; the store permits consecutive turns from the
// same role.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
