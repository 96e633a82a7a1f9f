package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrijs2005/filebox/internal/client/client"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/logging"
)

var (
	ErrNoToken      = errors.New(msgNoToken)
	ErrEmailBlocked = errors.New(msgEmailTaken)
)

// duplicateEmail matches the backend's "already registered" rejections.
var duplicateEmail = regexp.MustCompile(`(?i)already|зарегистр`)

// AuthService drives the account lifecycle.
//
// Register and Login share the success chain: store the credential, refresh
// the identity, reload the file list, then notify. Failures are notified and
// returned; the session is left unchanged.
type AuthService interface {
	// Start restores the persisted session, refreshes the identity and
	// loads the file list when signed in.
	Start(ctx context.Context) error
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	// RefreshIdentity asks the server who the credential belongs to.
	RefreshIdentity(ctx context.Context) string
	Identity() string
	// CanRegister is false for an email the server already rejected as a
	// duplicate.
	CanRegister(ctx context.Context, email string) bool
}

type authService struct {
	client   client.Client
	session  Session
	files    Reloader
	notifier Notifier
	log      logging.Logger

	mu       sync.Mutex
	identity string
}

func NewAuthService(c client.Client, s Session, files Reloader, n Notifier, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{
		client:   c,
		session:  s,
		files:    files,
		notifier: n,
		log:      log,
		identity: msgNotAuthenticated,
	}
}

func (a *authService) Start(ctx context.Context) error {
	err := a.session.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "session not restored", "error", err)
	}
	a.RefreshIdentity(ctx)
	if a.session.Authenticated() {
		_ = a.files.Reload(ctx)
	}
	return err
}

func (a *authService) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	if err := ValidatePassword(password); err != nil {
		a.notifier.Notify(err.Error(), notify.Error)
		return err
	}
	if !a.CanRegister(ctx, email) {
		a.notifier.Notify(msgEmailTaken, notify.Error)
		return ErrEmailBlocked
	}

	token, err := a.client.Register(ctx, email, password)
	if err == nil && token == "" {
		err = ErrNoToken
	}
	if err != nil {
		if duplicateEmail.MatchString(err.Error()) {
			if bErr := a.session.BlockEmail(ctx, email); bErr != nil {
				a.log.Warn(ctx, "blocked email not saved", "error", bErr)
			}
			a.notifier.Notify(msgEmailTaken, notify.Error)
			return fmt.Errorf("%w: %w", ErrEmailBlocked, err)
		}
		a.notifier.Notify(err.Error(), notify.Error)
		return err
	}

	a.signedIn(ctx, token)
	a.notifier.Notify(msgRegistered, notify.Success)
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	token, err := a.client.Login(ctx, email, password)
	if err == nil && token == "" {
		err = ErrNoToken
	}
	if err != nil {
		a.notifier.Notify(err.Error(), notify.Error)
		return err
	}

	a.signedIn(ctx, token)
	a.notifier.Notify(msgLoggedIn, notify.Success)
	return nil
}

func (a *authService) signedIn(ctx context.Context, token string) {
	if err := a.session.SetCredential(ctx, token); err != nil {
		a.log.Warn(ctx, "credential not persisted", "error", err)
	}
	a.RefreshIdentity(ctx)
	_ = a.files.Reload(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.session.SetCredential(ctx, "")
	if err != nil {
		a.log.Warn(ctx, "credential not removed", "error", err)
	}
	a.setIdentity(msgNotAuthenticated)
	a.notifier.Notify(msgLoggedOut, notify.Info)
	return err
}

func (a *authService) RefreshIdentity(ctx context.Context) string {
	user, err := a.client.Me(ctx)
	if err != nil {
		a.log.Debug(ctx, "identity unavailable", "error", err)
		a.setIdentity(msgNotAuthenticated)
		return msgNotAuthenticated
	}
	id := fmt.Sprintf(msgIdentityFmt, user.Email)
	a.setIdentity(id)
	return id
}

func (a *authService) Identity() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity
}

func (a *authService) setIdentity(s string) {
	a.mu.Lock()
	a.identity = s
	a.mu.Unlock()
}

func (a *authService) CanRegister(ctx context.Context, email string) bool {
	return !a.session.IsBlocked(ctx, email)
}
