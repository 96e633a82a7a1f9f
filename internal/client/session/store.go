// Package session holds the bearer credential of the signed-in user.
//
// The credential lives in memory for the API client and is mirrored to the
// local metadata store so it survives restarts. Whether the file regions of
// the UI are visible is derived from its presence and pushed to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filebox/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey        = "token"
	blockedEmailKey = "blockedEmail"
)

var ErrNoCredential = errors.New("no credential")

// Claims is the unverified payload of the credential. It is shown to the
// user and never used for authorization.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

type Store struct {
	repo metadata.Repository

	mu          sync.RWMutex
	token       string
	subscribers []func(visible bool)
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Subscribe registers fn to be called with the region visibility after every
// credential change and after Load.
func (s *Store) Subscribe(fn func(visible bool)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Load reads the persisted credential once at startup.
func (s *Store) Load(ctx context.Context) error {
	v, err := s.repo.Get(ctx, tokenKey)
	if err != nil {
		s.notify()
		return fmt.Errorf("load credential: %w", err)
	}

	s.mu.Lock()
	s.token = string(v)
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetCredential replaces the credential. An empty token clears it and
// removes the persisted copy. The in-memory value is updated even when
// persisting fails.
func (s *Store) SetCredential(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	var err error
	if token == "" {
		err = s.repo.Delete(ctx, tokenKey)
	} else {
		err = s.repo.Set(ctx, tokenKey, []byte(token))
	}

	s.notify()
	if err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

// Credential returns the current token or "".
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	return s.Credential() != ""
}

// Claims decodes the credential payload without verifying the signature.
func (s *Store) Claims() (*Claims, error) {
	token := s.Credential()
	if token == "" {
		return nil, ErrNoCredential
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}

	c := &Claims{}
	c.Subject, _ = mc.GetSubject()
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// BlockEmail remembers an address the server reported as already
// registered.
func (s *Store) BlockEmail(ctx context.Context, email string) error {
	if err := s.repo.Set(ctx, blockedEmailKey, []byte(strings.TrimSpace(email))); err != nil {
		return fmt.Errorf("persist blocked email: %w", err)
	}
	return nil
}

func (s *Store) blockedEmail(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, blockedEmailKey)
	if err != nil {
		return "", fmt.Errorf("load blocked email: %w", err)
	}
	return string(v), nil
}

// IsBlocked reports whether the trimmed email equals the remembered
// duplicate.
func (s *Store) IsBlocked(ctx context.Context, email string) bool {
	blocked, err := s.blockedEmail(ctx)
	if err != nil || blocked == "" {
		return false
	}
	return blocked == strings.TrimSpace(email)
}

// Forget drops the credential and the blocked email in one transaction.
func (s *Store) Forget(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	err := s.repo.DeleteKeys(ctx, tokenKey, blockedEmailKey)
	s.notify()
	if err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}

func (s *Store) notify() {
	s.mu.RLock()
	visible := s.token != ""
	subs := make([]func(bool), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(visible)
	}
}
