// Package chat holds the application state behind the two screens: the
// session manager, the transcript and the view switcher.
package chat

import (
	"github.com/diogo/geminichat/internal/models"
)

// Transcript is the ordered list of visible chat entries. Insertion order
// is display order. It is owned by a single goroutine (the UI loop) and is
// not safe for concurrent use.
type Transcript struct {
	entries []models.Message
	nextID  int
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds an entry and returns it with its ID assigned
func (t *Transcript) Append(role models.Role, text string) models.Message {
	msg := models.Message{
		ID:     t.nextID,
		Author: models.AuthorFor(role),
		Role:   role,
		Text:   text,
	}
	t.nextID++
	t.entries = append(t.entries, msg)
	return msg
}

func (t *Transcript) index(id int) int {
	// Entries are appended with increasing IDs, so search from the end
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// AppendText concatenates frag onto the text of entry id
func (t *Transcript) AppendText(id int, frag string) (models.Message, bool) {
	i := t.index(id)
	if i < 0 {
		return models.Message{}, false
	}
	t.entries[i].Text += frag
	return t.entries[i], true
}

// SetStreaming flags entry id as receiving fragments
func (t *Transcript) SetStreaming(id int, streaming bool) {
	if i := t.index(id); i >= 0 {
		t.entries[i].Streaming = streaming
	}
}

// Remove deletes a placeholder entry. Other entries are never removed.
func (t *Transcript) Remove(id int) bool {
	i := t.index(id)
	if i < 0 || t.entries[i].Role != models.RolePlaceholder {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return true
}

// Get returns entry id
func (t *Transcript) Get(id int) (models.Message, bool) {
	i := t.index(id)
	if i < 0 {
		return models.Message{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of all entries in display order
func (t *Transcript) Entries() []models.Message {
	out := make([]models.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Count returns the number of entries with the given role
func (t *Transcript) Count(role models.Role) int {
	n := 0
	for _, e := range t.entries {
		if e.Role == role {
			n++
		}
	}
	return n
}

// Last returns the most recent entry with the given role
func (t *Transcript) Last(role models.Role) (models.Message, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Role == role {
			return t.entries[i], true
		}
	}
	return models.Message{}, false
}

// Reset drops every entry
func (t *Transcript) Reset() {
	t.entries = nil
}
