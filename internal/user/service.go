package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
)

var (
	ErrNotFound           = apperr.New(apperr.ErrNotFound, "usuário não encontrado")
	ErrEmailTaken         = apperr.New(apperr.ErrConflict, "e-mail já cadastrado")
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "e-mail ou senha inválidos")
	ErrNotSuperAdmin      = apperr.New(apperr.ErrForbidden, "acesso restrito ao administrador")
)

const minPasswordLen = 6

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}

	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns the same error for an unknown e-mail and a wrong
// password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !checkPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) AuthenticateAdmin(ctx context.Context, email, password string) (*User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !u.IsSuperAdmin {
		return nil, ErrNotSuperAdmin
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if !checkPassword(u.PasswordHash, current) {
		return apperr.New(apperr.ErrInvalidInput, "senha atual incorreta")
	}

	return s.setPassword(ctx, id, next)
}

// ResetPassword lets a super-admin replace any user's password.
func (s *Service) ResetPassword(ctx context.Context, adminID, id int64, next string) error {
	if err := s.RequireSuperAdmin(ctx, adminID); err != nil {
		return err
	}

	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}

	return s.setPassword(ctx, id, next)
}

// IsSuperAdmin fails closed: an unknown user is not an admin.
func (s *Service) IsSuperAdmin(ctx context.Context, id int64) (bool, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return u.IsSuperAdmin, nil
}

func (s *Service) RequireSuperAdmin(ctx context.Context, id int64) error {
	ok, err := s.IsSuperAdmin(ctx, id)
	if err != nil {
		return err
	}

	if !ok {
		return ErrNotSuperAdmin
	}

	return nil
}

func (s *Service) setPassword(ctx context.Context, id int64, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.New(apperr.ErrInvalidInput, "e-mail é obrigatório")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperr.New(apperr.ErrInvalidInput, "e-mail inválido")
	}

	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperr.Newf(apperr.ErrInvalidInput, "a senha deve ter ao menos %d caracteres", minPasswordLen)
	}

	return nil
}
