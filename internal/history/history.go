// Package history persists the chat transcript between turns.
package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Greeting is the assistant's opening line of an empty transcript.
const Greeting = "Hi! Ask me anything about company operations."

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage stamps a message with a fresh ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// GreetingMessage returns the opening assistant message.
func GreetingMessage() Message { return NewMessage(RoleAssistant, Greeting) }

// Store holds an ordered transcript. Load on an empty store yields only the
// greeting; Append persists the greeting along with the first messages.
type Store interface {
	Load() ([]Message, error)
	Append(msgs ...Message) error
	Clear() error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendNone   Backend = "none"
)

// Open returns the store for backend at path. The SQLite backend swaps a
// .json extension for .db so both stores can share one configured name.
func Open(backend Backend, path string) (Store, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendJSON, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		if ext := filepath.Ext(path); strings.EqualFold(ext, ".json") {
			path = strings.TrimSuffix(path, ext) + ".db"
		}
		return NewSQLiteStore(path)
	case BackendNone:
		return noopStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be json, sqlite, or none", backend)
	}
}

type noopStore struct{}

func (noopStore) Load() ([]Message, error) { return []Message{GreetingMessage()}, nil }
func (noopStore) Append(...Message) error { return nil }
func (noopStore) Clear() error { return nil }
func (noopStore) Close() error { return nil }
