package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/store"
)

func newStore(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocalStore("", "")
	require.NoError(t, err)
	return s
}

func Test_Service_Login(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		wantName string
		wantErr  error
	}{
		{name: "name from local part", email: "ana.lima@example.com", password: "x", wantName: "ana.lima"},
		{name: "no local part", email: "@example.com", password: "x", wantName: "User"},
		{name: "plain handle", email: "bob", password: "x", wantName: "bob"},
		{name: "blank email", email: "  ", password: "x", wantErr: domain.ErrInvalidCredentials},
		{name: "blank password", email: "a@b.c", password: "", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			st := newStore(t)
			svc := NewService(st, Options{}, nil)
			// when
			user, err := svc.Login(tc.email, tc.password)
			// then
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, svc.Authenticated())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, user.Name)
			current, ok := svc.Current()
			require.True(t, ok)
			assert.Equal(t, user, current)
		})
	}
}

func Test_Service_SessionPersists(t *testing.T) {
	// given
	st := newStore(t)
	svc := NewService(st, Options{}, nil)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	_, err := svc.Login("ana@example.com", "secret")
	require.NoError(t, err)

	// when
	restored := NewService(st, Options{}, nil)

	// then
	user, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, "ana", user.Name)
	saved, ok := st.GetSession()
	require.True(t, ok)
	assert.NotEmpty(t, saved.Token)
	assert.True(t, fixed.Equal(saved.CreatedAt))

	// logout clears the stored session
	require.NoError(t, restored.Logout())
	_, ok = NewService(st, Options{}, nil).Current()
	assert.False(t, ok)
}

func Test_Service_InitialTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	testCases := []struct {
		name   string
		saved  string
		opts   Options
		wantOn bool
	}{
		{name: "saved preference wins", saved: domain.ThemeLight, opts: Options{Theme: "dark", DetectBackground: dark}, wantOn: false},
		{name: "configured theme", opts: Options{Theme: "dark", DetectBackground: light}, wantOn: true},
		{name: "auto uses detected background", opts: Options{Theme: "auto", DetectBackground: dark}, wantOn: true},
		{name: "no detector defaults to light", opts: Options{Theme: "auto"}, wantOn: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			st := newStore(t)
			if tc.saved != "" {
				require.NoError(t, st.SaveTheme(tc.saved))
			}
			// when
			svc := NewService(st, tc.opts, nil)
			// then
			assert.Equal(t, tc.wantOn, svc.IsDark())
		})
	}
}

func Test_Service_ToggleTheme(t *testing.T) {
	// given
	st := newStore(t)
	svc := NewService(st, Options{Theme: "light"}, nil)

	// when
	dark, err := svc.ToggleTheme()

	// then
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, svc.IsDark())
	theme, ok := st.GetTheme()
	require.True(t, ok)
	assert.Equal(t, domain.ThemeDark, theme)
}
