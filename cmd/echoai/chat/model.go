// Package chat implements the interactive conversation TUI.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"echoai/cmd/echoai/ui"
	"echoai/internal/api"
	"echoai/internal/dispatch"
	"echoai/internal/session"
	"echoai/internal/ux"
)

// ViewMode determines which component is focused/active
type ViewMode int

const (
	ChatView ViewMode = iota
	ServicePickerView
)

// serviceItem is a list item for the service picker
type serviceItem struct {
	service     api.AIService
	suggestions []string
}

func (i serviceItem) Title() string       { return i.service.Name }
func (i serviceItem) Description() string { return i.service.Description }
func (i serviceItem) FilterValue() string { return i.service.Name }

// Model is the bubbletea model for the chat screen.
type Model struct {
	client     *api.Client
	dispatcher *dispatch.Dispatcher
	sessions   *session.Manager
	feed       *ux.Feed
	logger     *zap.Logger

	styles   ui.Styles
	renderer *glamour.TermRenderer
	markdown bool

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	services list.Model

	mode    ViewMode
	ready   bool
	sending bool
	width   int
	height  int
}

// Options configures the chat model.
type Options struct {
	Markdown bool
	DarkMode bool
}

// New creates the chat model. The dispatcher already carries the default
// service; services for the picker load asynchronously on Init.
func New(client *api.Client, dispatcher *dispatch.Dispatcher, sessions *session.Manager, feed *ux.Feed, logger *zap.Logger, opts Options) Model {
	theme := ui.DetectTheme()
	if opts.DarkMode {
		theme = ui.DarkTheme()
	}
	styles := ui.NewStyles(theme)

	ta := textarea.New()
	ta.Placeholder = "Share what's on your mind..."
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	svcList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	svcList.Title = "Choose a companion"
	svcList.SetShowStatusBar(false)

	var renderer *glamour.TermRenderer
	if opts.Markdown {
		style := "light"
		if theme.IsDark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			renderer = r
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		client:     client,
		dispatcher: dispatcher,
		sessions:   sessions,
		feed:       feed,
		logger:     logger,
		styles:     styles,
		renderer:   renderer,
		markdown:   opts.Markdown,
		textarea:   ta,
		spinner:    sp,
		services:   svcList,
		mode:       ChatView,
	}

	if user := sessions.User(); user != nil {
		dispatcher.SystemNote(fmt.Sprintf("Welcome back, %s. I'm here whenever you want to talk.", user.FirstName()))
	}

	return m
}

// Init loads the service list in the background.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadServices())
}

func (m Model) loadServices() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		services, err := client.Services(ctx)
		if err != nil {
			return servicesLoadedMsg{err: err}
		}

		items := make([]serviceItem, 0, len(services))
		for _, svc := range services {
			item := serviceItem{service: svc}
			if suggestions, err := client.ServiceSuggestions(ctx, svc.ID); err == nil {
				item.suggestions = suggestions
			}
			items = append(items, item)
		}
		return servicesLoadedMsg{services: items}
	}
}

func (m Model) sendMessage(text string) tea.Cmd {
	dispatcher := m.dispatcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		turn, err := dispatcher.Send(ctx, text)
		return sendCompleteMsg{turn: turn, err: err}
	}
}
