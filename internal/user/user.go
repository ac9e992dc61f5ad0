package user

import (
	"strings"
	"time"
	"unicode"
)

// User is a tenant. Every tenant-scoped row carries the owner's ID.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsSuperAdmin bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// DisplayName returns the name shown for u. When no name was registered it is
// derived from the local part of the e-mail: separators ('.', '_', '-', '+')
// become spaces and each word is capitalised ("maria.silva@x" -> "Maria Silva").
// The derived value is never written back.
func DisplayName(u *User) string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}

	local, _, _ := strings.Cut(u.Email, "@")

	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
