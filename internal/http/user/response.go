package user

import (
	"time"

	"github.com/MrJamesThe3rd/vitrine/internal/user"
)

type userResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		DisplayName:  user.DisplayName(u),
		Email:        u.Email,
		IsSuperAdmin: u.IsSuperAdmin,
		CreatedAt:    u.CreatedAt,
	}
}
