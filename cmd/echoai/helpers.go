package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"echoai/internal/api"
	"echoai/internal/config"
	"echoai/internal/session"
	"echoai/internal/tokenstore"
	"echoai/internal/ux"
)

// app wires the client stack for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *tokenstore.Store
	client   *api.Client
	sessions *session.Manager
	feed     *ux.Feed
}

func buildApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	store, err := tokenstore.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	feed := ux.NewFeed(32)
	client := api.New(cfg.API.BaseURL, store,
		api.WithNotifier(feed),
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout.Std()),
	)
	sessions := session.New(client, store, feed, cliNavigator{}, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		client:   client,
		sessions: sessions,
		feed:     feed,
	}, nil
}

// flushNotices prints accumulated notices; CLI commands have no status
// line, so the feed drains to stdout at the end.
func (a *app) flushNotices() {
	for _, notice := range a.feed.All() {
		switch notice.Level {
		case ux.LevelError:
			fmt.Fprintln(os.Stderr, notice.Message)
		default:
			fmt.Println(notice.Message)
		}
	}
}

// cliNavigator satisfies session.Navigator for one-shot commands, where
// there is no screen to switch.
type cliNavigator struct{}

func (cliNavigator) Navigate(string) {}

// promptLine reads one line from stdin with a label.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
