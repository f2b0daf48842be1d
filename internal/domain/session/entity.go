package session

import (
	"time"

	"github.com/google/uuid"
)

// Session carries the per-client conversational state. Each caller owns its
// own session value; nothing is shared between independent sessions.
type Session struct {
	ID string `json:"id"`

	// GeneralContext accumulates the general legal chat history for this
	// session only.
	GeneralContext string `json:"general_context"`

	// DocumentContext accumulates the document-grounded chat history.
	DocumentContext string `json:"document_context"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session with a fresh identifier
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendGeneralExchange folds one general chat question/answer pair into
// the session's general context.
func (s *Session) AppendGeneralExchange(userMessage, answer string) {
	s.GeneralContext += "\nUser: " + userMessage + "\n\nSenior Lawyer: " + answer + "\n"
	s.UpdatedAt = time.Now()
}

// AppendDocumentExchange folds one document chat question/answer pair into
// the session's document context.
func (s *Session) AppendDocumentExchange(userMessage, answer string) {
	s.DocumentContext += "\nUser: " + userMessage + "\n\nBot: " + answer + "\n"
	s.UpdatedAt = time.Now()
}
