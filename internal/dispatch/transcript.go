package dispatch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one entry in the conversation transcript.
type Turn struct {
	ID       string
	Role     Role
	Content  string
	Time     time.Time
	Fallback bool // assistant turn came from the fallback endpoint
}

// Transcript is an append-only ordered list of turns. Turns are never
// edited or removed once appended.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

func (t *Transcript) append(role Role, content string, fallback bool) Turn {
	turn := Turn{
		ID:       uuid.NewString(),
		Role:     role,
		Content:  content,
		Time:     time.Now(),
		Fallback: fallback,
	}

	t.mu.Lock()
	t.turns = append(t.turns, turn)
	t.mu.Unlock()
	return turn
}

// Turns returns a copy of the transcript in append order.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
