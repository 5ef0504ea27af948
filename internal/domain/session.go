package domain

import "time"

// User is the locally mocked account
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is a mock authenticated session persisted in the local store
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// Theme preference values as persisted
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)
