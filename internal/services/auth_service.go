package services

import (
	"errors"

	"medimart/internal/domain"
	"medimart/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Register(sid, name, email, password string) (*domain.User, error) {
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id := "u-" + uuid.NewString()
	if err := s.Users.Create(id, email, name, string(h), "USER"); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, id); err != nil {
		return nil, err
	}
	return s.Users.ByID(id)
}

// UpdateProfile changes name/email and optionally the password for the
// session's user.
func (s *AuthService) UpdateProfile(userID, name, email, password string) (*domain.User, error) {
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}
	if err := s.Users.UpdateProfile(userID, name, email, hash); err != nil {
		return nil, err
	}
	return s.Users.ByID(userID)
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
