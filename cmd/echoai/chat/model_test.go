package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"echoai/internal/api"
	"echoai/internal/dispatch"
	"echoai/internal/session"
	"echoai/internal/tokenstore"
	"echoai/internal/ux"
)

type echoBackend struct {
	calls int
}

func (e *echoBackend) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	e.calls++
	return &api.ChatResponse{Response: "echo: " + req.Message}, nil
}

func (e *echoBackend) SmartChat(_ context.Context, req api.SmartChatRequest) (*api.ChatResponse, error) {
	e.calls++
	return &api.ChatResponse{Response: "smart: " + req.Message}, nil
}

func newTestModel(t *testing.T) (Model, *echoBackend) {
	t.Helper()

	store := tokenstore.NewAt(filepath.Join(t.TempDir(), "token.json"))
	client := api.New("http://127.0.0.1:0", store)
	sessions := session.New(client, store, ux.Nop{}, nil, nil)
	be := &echoBackend{}
	dispatcher := dispatch.New(be, "memory_companion", nil, nil, dispatch.Options{})
	feed := ux.NewFeed(8)

	m := New(client, dispatcher, sessions, feed, nil, Options{})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(Model), be
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func pressEnter(m Model) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

// collectMsgs runs a command tree, flattening batches into their messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSendComplete(msgs []tea.Msg) (sendCompleteMsg, bool) {
	for _, msg := range msgs {
		if done, ok := msg.(sendCompleteMsg); ok {
			return done, true
		}
	}
	return sendCompleteMsg{}, false
}

func TestEnterSendsAndDisablesInput(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeText(m, "hello")
	m, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if !m.sending {
		t.Fatal("model should be in sending state")
	}
	if m.textarea.Value() != "" {
		t.Fatal("textarea should reset after send")
	}
}

func TestEnterIgnoredWhileSending(t *testing.T) {
	m, be := newTestModel(t)

	m = typeText(m, "first")
	m, cmd := pressEnter(m)
	if _, ok := findSendComplete(collectMsgs(cmd)); !ok {
		t.Fatal("send command did not complete")
	}
	if be.calls != 1 {
		t.Fatalf("expected 1 send, got %d", be.calls)
	}

	// Still sending: a second Enter must not dispatch anything.
	m = typeText(m, "second")
	_, cmd = pressEnter(m)
	if cmd != nil {
		t.Fatal("Enter while sending must be ignored")
	}
	if be.calls != 1 {
		t.Fatalf("in-flight gate broken: %d sends", be.calls)
	}
}

func TestEnterIgnoredForEmptyInput(t *testing.T) {
	m, be := newTestModel(t)

	m = typeText(m, "   ")
	_, cmd := pressEnter(m)
	if cmd != nil {
		t.Fatal("whitespace input must not dispatch")
	}
	if be.calls != 0 {
		t.Fatalf("expected no sends, got %d", be.calls)
	}
}

func TestSendCompleteReenablesInput(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeText(m, "hello")
	m, cmd := pressEnter(m)
	done, ok := findSendComplete(collectMsgs(cmd))
	if !ok {
		t.Fatal("send command did not complete")
	}

	updated, _ := m.Update(done)
	m = updated.(Model)
	if m.sending {
		t.Fatal("sending flag should clear after completion")
	}
}

func TestWelcomeGreetsByFirstName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"valid": true}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "username": "asmith", "email": "a@b.com", "full_name": "Alice Smith", "is_active": true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokenstore.NewAt(filepath.Join(t.TempDir(), "token.json"))
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	client := api.New(srv.URL, store)
	sessions := session.New(client, store, ux.Nop{}, nil, nil)
	if err := sessions.Startup(context.Background()); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	dispatcher := dispatch.New(&echoBackend{}, "memory_companion", nil, nil, dispatch.Options{})
	New(client, dispatcher, sessions, ux.NewFeed(4), nil, Options{})

	turns := dispatcher.Transcript()
	if len(turns) != 1 || turns[0].Role != dispatch.RoleSystem {
		t.Fatalf("expected one system turn, got %+v", turns)
	}
	if !strings.Contains(turns[0].Content, "Alice") || strings.Contains(turns[0].Content, "Alice Smith") {
		t.Fatalf("greeting should use the first name only, got %q", turns[0].Content)
	}
}

func TestSafeRenderMarkdownWithoutRenderer(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.safeRenderMarkdown("**bold**"); got != "**bold**" {
		t.Fatalf("nil renderer should pass content through, got %q", got)
	}
}

func TestSwitchServiceSameIDKeepsConversation(t *testing.T) {
	m, _ := newTestModel(t)

	before := m.dispatcher.Transcript()
	m.switchService(serviceItem{service: api.AIService{ID: "memory_companion", Name: "Memory Companion"}})
	after := m.dispatcher.Transcript()

	if len(after) != len(before) {
		t.Fatal("switching to the active service must be a no-op")
	}
}
