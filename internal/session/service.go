// Package session handles the mocked login and the theme preference.
package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/storefront/internal/domain"
)

// Service holds the current session and the dark-mode flag
type Service struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	session *domain.Session
	dark    bool
}

// Options configures the initial theme
type Options struct {
	Theme            string      // "dark", "light" or "auto"
	DetectBackground func() bool // Reports a dark terminal; used for "auto"
}

// NewService restores the saved session and resolves the initial theme:
// the saved preference, else the configured theme, else the detected background.
func NewService(store domain.Store, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, now: time.Now}

	if session, ok := store.GetSession(); ok && session.User.Email != "" {
		s.session = session
		logger.Debug("restored session", "user", session.User.Name)
	}

	switch theme, ok := store.GetTheme(); {
	case ok && (theme == domain.ThemeDark || theme == domain.ThemeLight):
		s.dark = theme == domain.ThemeDark
	case opts.Theme == domain.ThemeDark || opts.Theme == domain.ThemeLight:
		s.dark = opts.Theme == domain.ThemeDark
	case opts.DetectBackground != nil:
		s.dark = opts.DetectBackground()
	}

	return s
}

// Login starts a mock session. Any non-blank email and password are accepted;
// the display name is the local part of the email.
func (s *Service) Login(email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user := domain.User{Email: email, Name: displayName(email)}
	session := domain.Session{
		User:      user,
		Token:     uuid.NewString(),
		CreatedAt: s.now(),
	}
	if err := s.store.SaveSession(session); err != nil {
		s.logger.Error("failed to save session", "error", err)
		return domain.User{}, err
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	s.logger.Info("logged in", "user", user.Name)
	return user, nil
}

// Logout ends the session
func (s *Service) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.store.ClearSession(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// Current returns the logged-in user
func (s *Service) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.User{}, false
	}
	return s.session.User, true
}

// Authenticated reports whether a session is active
func (s *Service) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsDark reports whether the dark theme is active
func (s *Service) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// ToggleTheme flips and saves the theme; returns the new dark flag
func (s *Service) ToggleTheme() (bool, error) {
	s.mu.Lock()
	dark := !s.dark
	s.mu.Unlock()
	return dark, s.SetDark(dark)
}

// SetDark sets and saves the theme
func (s *Service) SetDark(dark bool) error {
	s.mu.Lock()
	s.dark = dark
	s.mu.Unlock()

	theme := domain.ThemeLight
	if dark {
		theme = domain.ThemeDark
	}
	if err := s.store.SaveTheme(theme); err != nil {
		s.logger.Error("failed to save theme", "error", err)
		return err
	}
	return nil
}

func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local = strings.TrimSpace(local); local != "" {
		return local
	}
	return "User"
}
