package api

import (
	"context"
	"fmt"
)

// Services lists the selectable chat personas.
func (c *Client) Services(ctx context.Context) ([]AIService, error) {
	var services []AIService
	if err := c.getJSON(ctx, "/chat/ai-services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ServiceSuggestions returns the static prompt suggestions for a persona.
func (c *Client) ServiceSuggestions(ctx context.Context, serviceID string) ([]string, error) {
	var resp SuggestionsResponse
	if err := c.getJSON(ctx, "/chat/ai-suggestions/"+serviceID, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// SmartSuggestions returns context-aware prompt suggestions.
func (c *Client) SmartSuggestions(ctx context.Context, req SuggestionsRequest) ([]string, error) {
	var resp SuggestionsResponse
	if err := c.postJSON(ctx, "/chat/smart-suggestions", req, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Chat sends a message to the persona endpoint.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat/ai-chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SmartChat sends a message to the provider-fallback endpoint. The server
// walks its provider chain starting from the preferred provider and answers
// with whichever responds first.
func (c *Client) SmartChat(ctx context.Context, req SmartChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat/free-ai/chat-smart", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Conversations lists the user's stored chat threads.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var convs []Conversation
	if err := c.getJSON(ctx, "/chat/conversations", &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// ConversationMessages returns the stored messages of one thread.
func (c *Client) ConversationMessages(ctx context.Context, conversationID int) ([]ConversationMessage, error) {
	var msgs []ConversationMessage
	path := fmt.Sprintf("/chat/conversations/%d/messages", conversationID)
	if err := c.getJSON(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// DeleteConversation removes a stored thread.
func (c *Client) DeleteConversation(ctx context.Context, conversationID int) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/chat/conversations/%d", conversationID), nil)
}
