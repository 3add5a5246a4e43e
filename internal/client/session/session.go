// Package session holds the authenticated identity of the CLI user: the
// opaque user record and the credential token, persisted in local storage so
// the next start restores them without a network round trip.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAdminRoles covers both naming conventions the backend has used.
var DefaultAdminRoles = []string{"ADMIN", "ROLE_ADMIN", "STAFF", "ROLE_STAFF"}

// Session is safe for concurrent use. isAuthenticated is never stored; it is
// derived from user and token on every read.
type Session struct {
	mu         sync.RWMutex
	repo       localstore.Repository
	log        logging.Logger
	adminRoles []string

	user  models.User
	token string
}

type Option func(*Session)

// WithAdminRoles replaces the admin-role allow-list.
func WithAdminRoles(roles []string) Option {
	return func(s *Session) { s.adminRoles = slices.Clone(roles) }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Restore builds a Session from what repo holds. A user record that does not
// parse is deleted and treated as absent.
func Restore(ctx context.Context, repo localstore.Repository, opts ...Option) (*Session, error) {
	s := &Session{
		repo:       repo,
		log:        logging.Discard(),
		adminRoles: slices.Clone(DefaultAdminRoles),
	}
	for _, opt := range opts {
		opt(s)
	}

	rawUser, err := repo.Get(ctx, common.StorageKeyUser)
	if err != nil {
		return nil, fmt.Errorf("restore user: %w", err)
	}
	if len(rawUser) > 0 {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.log.Warn(ctx, "discarding corrupt persisted user", "error", err)
			if err := repo.Delete(ctx, common.StorageKeyUser); err != nil {
				s.log.Warn(ctx, "failed to delete corrupt user", "error", err)
			}
		} else {
			s.user = u
		}
	}

	rawToken, err := repo.Get(ctx, common.StorageKeyToken)
	if err != nil {
		return nil, fmt.Errorf("restore token: %w", err)
	}
	s.token = normalizeToken(string(rawToken))

	return s, nil
}

// normalizeToken drops the literal "null"/"undefined" values that older web
// clients wrote when they stringified a missing token.
func normalizeToken(t string) string {
	switch t {
	case "null", "undefined":
		return ""
	default:
		return t
	}
}

// Login records a successful authentication. user may be nil (cookie or
// role-restricted flows); when present it is merged onto the current record.
// An empty token leaves the stored token untouched. The in-memory state is
// updated even when persisting fails; the persistence error is returned.
func (s *Session) Login(ctx context.Context, user models.User, token string) error {
	s.mu.Lock()
	if user != nil {
		if s.user != nil {
			s.user = s.user.Merge(user)
		} else {
			s.user = user.Clone()
		}
	}
	token = normalizeToken(token)
	if token != "" {
		s.token = token
	}
	snapshot := s.user.Clone()
	s.mu.Unlock()

	if user != nil {
		if err := s.persistUser(ctx, snapshot); err != nil {
			return err
		}
	}
	if token != "" {
		if err := s.repo.Set(ctx, common.StorageKeyToken, []byte(token)); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}
	return nil
}

// UpdateUser shallow-merges partial onto the current user. Without a current
// user it does nothing.
func (s *Session) UpdateUser(ctx context.Context, partial models.User) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	s.user = s.user.Merge(partial)
	snapshot := s.user.Clone()
	s.mu.Unlock()

	return s.persistUser(ctx, snapshot)
}

// Logout forgets the identity and removes user, token and the guest cart
// snapshot from storage. Calling it twice is harmless.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.repo.DeleteKeys(ctx, common.StorageKeyUser, common.StorageKeyToken, common.StorageKeyCart); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Session) persistUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.repo.Set(ctx, common.StorageKeyUser, b); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// IsAuthenticated is true when a user record or a token is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil || s.token != ""
}

// IsAdmin reports whether the user's role is on the admin allow-list.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := s.user.RoleName()
	if role == "" {
		return false
	}
	return slices.Contains(s.adminRoles, role)
}

// User returns a copy of the current user record, or nil.
func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenExpiry reads the exp claim when the token is a JWT. The signature is
// not verified; the backend remains the authority on validity.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
