package models

// Role identifies who a transcript entry belongs to
type Role string

const (
	RoleUser        Role = "user"
	RoleAssistant   Role = "assistant"
	RoleSystemError Role = "system_error"
	// RolePlaceholder marks the transient "thinking" entry shown while
	// waiting for the first fragment.
	RolePlaceholder Role = "placeholder"
)

// Authors shown above each bubble
const (
	AuthorUser      = "You"
	AuthorAssistant = "Gemini"
	AuthorSystem    = "System"
)

// Message represents a chat message for TUI display
type Message struct {
	ID        int
	Author    string
	Role      Role
	Text      string
	Streaming bool
}

// IsUser reports whether the message was typed by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsError reports whether the message is a system error entry
func (m Message) IsError() bool {
	return m.Role == RoleSystemError
}

// AuthorFor returns the display author for a role
func AuthorFor(role Role) string {
	switch role {
	case RoleUser:
		return AuthorUser
	case RoleAssistant, RolePlaceholder:
		return AuthorAssistant
	default:
		return AuthorSystem
	}
}
