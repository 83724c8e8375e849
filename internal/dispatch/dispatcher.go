// Package dispatch is the chat facade: it owns the transcript and the
// conversation handle, and hides the two-endpoint send policy (persona
// endpoint first, provider-fallback endpoint on failure, canned reply
// when everything is down) behind a single Send call.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"echoai/internal/api"
	"echoai/internal/ux"
)

// placeholderReply is the canned assistant turn used when both endpoints
// fail. The conversation keeps its shape even with no AI behind it.
const placeholderReply = "I understand what you're sharing. While I'm processing your request, I'm here to listen and help you reflect on your experiences. Could you tell me more about what's on your mind?"

const (
	fallbackNotice    = "Using fallback response. AI service may be limited."
	unavailableNotice = "All AI services are unavailable. Please try again later."
)

// ErrEmptyMessage is returned by Send for whitespace-only input.
var ErrEmptyMessage = errors.New("dispatch: empty message")

// Backend is the slice of the API client the dispatcher needs.
type Backend interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	SmartChat(ctx context.Context, req api.SmartChatRequest) (*api.ChatResponse, error)
}

// Handle identifies the current logical conversation.
type Handle struct {
	ConversationID int
	ServiceID      string
}

// Options tunes dispatch behavior.
type Options struct {
	// PreferredProvider seeds the server's provider chain on the fallback
	// endpoint.
	PreferredProvider string

	// SmartFallback enables the fallback endpoint. When false a failed
	// primary send goes straight to the placeholder reply.
	SmartFallback bool
}

// Dispatcher sends chat messages and records the transcript.
type Dispatcher struct {
	backend  Backend
	notifier ux.Notifier
	logger   *zap.Logger
	opts     Options

	transcript Transcript

	mu     sync.Mutex
	handle Handle
}

// New creates a dispatcher starting a fresh conversation on serviceID.
func New(backend Backend, serviceID string, notifier ux.Notifier, logger *zap.Logger, opts Options) *Dispatcher {
	if notifier == nil {
		notifier = ux.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		handle:   Handle{ServiceID: serviceID},
	}
}

// Handle returns the current conversation handle.
func (d *Dispatcher) Handle() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle
}

// Transcript returns the turns so far.
func (d *Dispatcher) Transcript() []Turn {
	return d.transcript.Turns()
}

// SystemNote appends an informational turn (welcome text, switch notices).
func (d *Dispatcher) SystemNote(text string) {
	d.transcript.append(RoleSystem, text, false)
}

// SwitchService changes the active persona and starts a new logical
// conversation; the previous conversation id is deliberately dropped so
// the old context never bleeds into the new persona.
func (d *Dispatcher) SwitchService(serviceID string) {
	d.mu.Lock()
	d.handle = Handle{ServiceID: serviceID}
	d.mu.Unlock()
}

// Send appends the user's message and exactly one assistant reply. The
// reply comes from the persona endpoint when it answers, the fallback
// endpoint when it doesn't, and the canned placeholder when neither does.
// Send never appends the user turn without also appending an assistant
// turn before returning.
func (d *Dispatcher) Send(ctx context.Context, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyMessage
	}

	handle := d.Handle()
	d.transcript.append(RoleUser, text, false)

	resp, err := d.backend.Chat(ctx, api.ChatRequest{
		Message:        text,
		ServiceID:      handle.ServiceID,
		ConversationID: handle.ConversationID,
	})
	if err == nil {
		d.adoptConversation(resp.ConversationID)
		return d.transcript.append(RoleAssistant, resp.Response, false), nil
	}

	d.logger.Warn("primary chat endpoint failed", zap.Error(err))

	if d.opts.SmartFallback {
		resp, ferr := d.backend.SmartChat(ctx, api.SmartChatRequest{
			Message:           text,
			ServiceID:         handle.ServiceID,
			PreferredProvider: d.opts.PreferredProvider,
			ConversationID:    handle.ConversationID,
		})
		if ferr == nil {
			d.notifier.Info(fallbackNotice)
			d.adoptConversation(resp.ConversationID)
			return d.transcript.append(RoleAssistant, resp.Response, true), nil
		}
		d.logger.Warn("fallback chat endpoint failed", zap.Error(ferr))
	}

	d.notifier.Error(unavailableNotice)
	return d.transcript.append(RoleAssistant, placeholderReply, true), nil
}

// adoptConversation records a server-assigned conversation id, but only
// when none is established yet. An established id is never overwritten.
func (d *Dispatcher) adoptConversation(id int) {
	if id == 0 {
		return
	}
	d.mu.Lock()
	if d.handle.ConversationID == 0 {
		d.handle.ConversationID = id
	}
	d.mu.Unlock()
}
