// Package auth resolves the session cookie to a user. The OAuth handshake
// with the identity provider lives outside this service; it hands the
// provider identity to Service.CompleteLogin and sets the returned token as
// the session cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/drew2323/v3trading/internal/cache"
	"github.com/drew2323/v3trading/internal/models"
)

const CookieName = "access_token"

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrUnknownUser     = fmt.Errorf("%w: user not found", ErrUnauthenticated)
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is what the identity provider tells us about a user.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Directory is the in-memory user table.
type Directory struct {
	users *cache.MapCache[string, models.User]
}

func NewDirectory() *Directory {
	return &Directory{users: cache.NewMapCache[string, models.User]()}
}

func (d *Directory) ByID(id string) (models.User, bool) { return d.users.Get(id) }

func (d *Directory) ByProviderID(subject string) (models.User, bool) {
	var (
		found models.User
		ok    bool
	)
	d.users.Range(func(_ string, u models.User) bool {
		if u.ProviderID == subject {
			found, ok = u, true
			return false
		}
		return true
	})
	return found, ok
}

func (d *Directory) Put(u models.User) { d.users.Set(u.ID, u) }

type Service struct {
	Users  *Directory
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration, users *Directory) *Service {
	if users == nil {
		users = NewDirectory()
	}
	return &Service{Users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// CompleteLogin finds or creates the user for id, stamps the login time and
// issues a session token.
func (s *Service) CompleteLogin(id Identity) (models.User, string, error) {
	now := s.now().UTC()
	u, ok := s.Users.ByProviderID(id.Subject)
	if !ok {
		u = models.User{
			ID:         uuid.NewString(),
			Email:      id.Email,
			Name:       id.Name,
			Picture:    id.Picture,
			ProviderID: id.Subject,
			CreatedAt:  now,
		}
	}
	u.LastLogin = now
	s.Users.Put(u)

	token, err := s.Issue(u)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Issue(u models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate resolves a session token to a known user.
func (s *Service) Authenticate(token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthenticated
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return models.User{}, ErrInvalidToken
	}
	u, ok := s.Users.ByID(claims.Subject)
	if !ok {
		return models.User{}, ErrUnknownUser
	}
	return u, nil
}
