package api

import (
	"strings"
	"time"
)

// User is the authenticated account profile from GET /auth/me.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FirstName returns the leading word of the full name, falling back to the
// username when no full name is set.
func (u *User) FirstName() string {
	if u.FullName != "" {
		if idx := strings.IndexByte(u.FullName, ' '); idx > 0 {
			return u.FullName[:idx]
		}
		return u.FullName
	}
	return u.Username
}

// AuthResponse is the credential exchange result from POST /auth/token.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyResponse is the token check result from GET /auth/verify.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

// AIService describes a selectable chat persona.
type AIService struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// ChatRequest is the payload for the persona endpoint POST /chat/ai-chat.
type ChatRequest struct {
	Message        string `json:"message" validate:"required"`
	ServiceID      string `json:"service_id,omitempty"`
	ConversationID int    `json:"conversation_id,omitempty"`
}

// ChatResponse is the assistant reply from either chat endpoint.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID int    `json:"conversation_id,omitempty"`
	TokensUsed     int    `json:"tokens_used,omitempty"`
	ReplicaName    string `json:"replica_name,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SmartChatRequest is the payload for the provider-fallback endpoint
// POST /chat/free-ai/chat-smart. The service id keeps the reply in the
// persona the user selected even on the degraded path.
type SmartChatRequest struct {
	Message           string `json:"message" validate:"required"`
	ServiceID         string `json:"service_id,omitempty"`
	PreferredProvider string `json:"provider,omitempty"`
	ConversationID    int    `json:"conversation_id,omitempty"`
}

// SuggestionsRequest is the payload for POST /chat/smart-suggestions.
type SuggestionsRequest struct {
	ServiceID string `json:"service_id"`
	Context   string `json:"context,omitempty"`
}

// SuggestionsResponse carries prompt suggestions for a service.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Conversation is a stored chat thread.
type Conversation struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	ServiceID    string    `json:"service_id,omitempty"`
	MessageCount int       `json:"message_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// ConversationMessage is a single stored message in a conversation.
type ConversationMessage struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Memory is a stored memory entry.
type Memory struct {
	ID          int       `json:"id"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMemoryRequest is the payload for POST /memories/text.
type CreateMemoryRequest struct {
	Content string `json:"content" validate:"required"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
}

// MemoryQuery filters GET /memories/ listings.
type MemoryQuery struct {
	Skip        int
	Limit       int
	ContentType string
	Source      string
}

// SearchRequest is the payload for POST /memories/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult is one scored hit from memory search.
type SearchResult struct {
	Content         string                 `json:"content"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	SimilarityScore float64                `json:"similarity_score"`
	MemoryID        int                    `json:"memory_id"`
}

// RecentMemory is the trimmed entry the stats overview lists.
type RecentMemory struct {
	ID          int       `json:"id"`
	Title       string    `json:"title,omitempty"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemoryStats summarizes the user's memory collection.
type MemoryStats struct {
	TotalMemories  int            `json:"total_memories"`
	ByType         map[string]int `json:"by_type,omitempty"`
	RecentMemories []RecentMemory `json:"recent_memories,omitempty"`
}

// Replica is a trained digital replica.
type Replica struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Status           string    `json:"status"`
	InteractionCount int       `json:"interaction_count,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReplicaRequest creates or updates a replica.
type ReplicaRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
}

// ReplicaStats summarizes a replica's training state.
type ReplicaStats struct {
	ReplicaID        int    `json:"replica_id"`
	Status           string `json:"status"`
	MemoriesTrained  int    `json:"memories_trained"`
	InteractionCount int    `json:"interaction_count"`
}
