// Package session owns the authentication lifecycle of the client. The
// Manager is the single writer of auth state: the stored token, the cached
// profile, and the status machine all change only through it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"echoai/internal/api"
	"echoai/internal/tokenstore"
	"echoai/internal/ux"
)

// Status is the authentication state.
type Status int

const (
	Unauthenticated Status = iota
	Verifying
	Authenticated
)

// String returns the display name for a status.
func (s Status) String() string {
	switch s {
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Routes the manager navigates between. The terminal client maps these to
// screens; the names keep the web client's paths.
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// Navigator switches the active screen.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Manager drives the auth lifecycle. Construct with New; it registers
// itself as the client's unauthorized handler.
type Manager struct {
	client   *api.Client
	store    *tokenstore.Store
	notifier ux.Notifier
	nav      Navigator
	logger   *zap.Logger
	validate *validator.Validate

	mu     sync.Mutex
	status Status
	user   *api.User
}

// New creates a Manager and hooks it into the client's 401 handling.
func New(client *api.Client, store *tokenstore.Store, notifier ux.Notifier, nav Navigator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = ux.Nop{}
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}

	m := &Manager{
		client:   client,
		store:    store,
		notifier: notifier,
		nav:      nav,
		logger:   logger,
		validate: validator.New(),
		status:   Unauthenticated,
	}
	client.SetUnauthorizedHandler(m.handleUnauthorized)
	return m
}

// Status returns the current auth status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the cached profile, nil when not authenticated.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) setState(status Status, user *api.User) {
	m.mu.Lock()
	m.status = status
	m.user = user
	m.mu.Unlock()
}

// Startup resolves the stored token into a session. No token means
// Unauthenticated and is not an error; a stored but rejected token is
// cleared the same way a logout would clear it.
func (m *Manager) Startup(ctx context.Context) error {
	if _, ok := m.store.Token(); !ok {
		m.setState(Unauthenticated, nil)
		return nil
	}

	m.setState(Verifying, nil)

	resp, err := m.client.Verify(ctx)
	if err != nil || !resp.Valid {
		// A 401 already ran the unauthorized handler; any other failure
		// gets the same cleanup here.
		m.logger.Debug("stored token rejected", zap.Error(err))
		m.clearSession()
		return nil
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("profile fetch failed after verify", zap.Error(err))
		m.clearSession()
		return fmt.Errorf("failed to load profile: %w", err)
	}

	m.setState(Authenticated, user)
	m.logger.Info("session restored", zap.String("username", user.Username))
	return nil
}

// Login exchanges credentials for a token, persists it, and loads the
// profile. The token is persisted in the same operation that sets
// Authenticated; neither happens without the other.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.notifier.Error(api.ErrorDetail(err, "Login failed. Please check your credentials."))
		return fmt.Errorf("login failed: %w", err)
	}

	if err := m.store.Save(resp.AccessToken); err != nil {
		m.notifier.Error("Could not save your session.")
		return fmt.Errorf("failed to persist token: %w", err)
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.clearSession()
		m.notifier.Error(api.ErrorDetail(err, "Login failed. Please try again."))
		return fmt.Errorf("failed to load profile: %w", err)
	}

	m.setState(Authenticated, user)
	m.notifier.Success("Welcome back!")
	m.nav.Navigate(RouteDashboard)
	m.logger.Info("logged in", zap.String("username", user.Username))
	return nil
}

// Register creates an account. Field validation happens locally first;
// an invalid form never reaches the network. Success does not
// authenticate, it routes to the login screen.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := m.validate.Struct(req); err != nil {
		m.notifier.Error(registrationMessage(err))
		return fmt.Errorf("invalid registration: %w", err)
	}

	if _, err := m.client.Register(ctx, req); err != nil {
		m.notifier.Error(api.ErrorDetail(err, "Registration failed. Please try again."))
		return fmt.Errorf("registration failed: %w", err)
	}

	m.notifier.Success("Account created successfully! Please log in.")
	m.nav.Navigate(RouteLogin)
	m.logger.Info("account registered", zap.String("username", req.Username))
	return nil
}

// registrationMessage turns the first validation failure into the message
// the user sees.
func registrationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the registration form."
	}

	switch fe := verrs[0]; fe.Field() {
	case "Username":
		return "Username must be at least 3 characters."
	case "Email":
		return "Please enter a valid email address."
	case "Password":
		return "Password must be at least 8 characters."
	default:
		return "Please check the registration form."
	}
}

// Logout ends the session. Safe to call in any state.
func (m *Manager) Logout() {
	m.clearSession()
	m.nav.Navigate(RouteHome)
	m.notifier.Success("Logged out successfully")
	m.logger.Info("logged out")
}

// handleUnauthorized runs when any request comes back 401: the session is
// over, whatever the client thought it had.
func (m *Manager) handleUnauthorized() {
	m.logger.Info("session expired")
	m.clearSession()
	m.nav.Navigate(RouteLogin)
}

func (m *Manager) clearSession() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear token", zap.Error(err))
	}
	m.setState(Unauthenticated, nil)
}
