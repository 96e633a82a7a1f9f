package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/filebox/internal/client/client"
	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/client/notify"
	"github.com/dmitrijs2005/filebox/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"short1", msgPasswordTooShort},
		{"abc", msgPasswordTooShort},
		{"12345678", msgPasswordNoLetter},
		{"пароль12345", msgPasswordNoLetter},
		{"abcdefgh", msgPasswordNoDigit},
		{"Passw0rd", ""},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidPassword)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestLogin_SuccessChain(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fc := &fakeClient{
		LoginFn: func(email, password string) (string, error) {
			assert.Equal(t, "a@x.com", email)
			assert.Equal(t, "Passw0rd", password)
			return "tok", nil
		},
		MeFn: func() (*models.User, error) { return &models.User{ID: 1, Email: "a@x.com"}, nil },
	}
	n := &fakeNotifier{}
	files := NewFileList(fc, sess, n, newFakeView(), func() models.ListFilter { return models.ListFilter{} })
	auth := NewAuthService(fc, sess, files, n, nil)

	require.NoError(t, auth.Login(ctx, " a@x.com ", "Passw0rd"))

	assert.Equal(t, "tok", sess.Credential())
	assert.Equal(t, []string{"login", "me", "list"}, fc.Calls())
	require.Len(t, fc.Filters, 1)
	assert.Equal(t, models.StateActive, fc.Filters[0].State)
	assert.Equal(t, "Вы вошли: a@x.com", auth.Identity())
	assert.Equal(t, notify.Notification{Message: msgLoggedIn, Severity: notify.Success}, n.Last())
}

func TestLogin_FailureNotifiedVerbatim(t *testing.T) {
	sess := newSession(t)
	fc := &fakeClient{
		LoginFn: func(string, string) (string, error) {
			return "", &client.APIError{Status: 401, Message: "Invalid credentials"}
		},
	}
	n := &fakeNotifier{}
	reload := &fakeReloader{}
	auth := NewAuthService(fc, sess, reload, n, nil)

	err := auth.Login(context.Background(), "a@x.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, notify.Notification{Message: "Invalid credentials", Severity: notify.Error}, n.Last())
	assert.False(t, sess.Authenticated())
	assert.Equal(t, 0, reload.Count())
}

func TestLogin_MissingToken(t *testing.T) {
	sess := newSession(t)
	n := &fakeNotifier{}
	auth := NewAuthService(&fakeClient{}, sess, &fakeReloader{}, n, nil)

	err := auth.Login(context.Background(), "a@x.com", "Passw0rd")
	require.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, msgNoToken, n.Last().Message)
	assert.False(t, sess.Authenticated())
}

func TestRegister_ShortPasswordMakesNoCall(t *testing.T) {
	fc := &fakeClient{}
	n := &fakeNotifier{}
	auth := NewAuthService(fc, newSession(t), &fakeReloader{}, n, nil)

	err := auth.Register(context.Background(), "a@x.com", "short1")
	require.ErrorIs(t, err, ErrInvalidPassword)
	assert.Empty(t, fc.Calls())
	assert.Equal(t, notify.Notification{Message: "Пароль должен быть не короче 8 символов", Severity: notify.Error}, n.Last())
}

func TestRegister_Success(t *testing.T) {
	sess := newSession(t)
	fc := &fakeClient{
		RegisterFn: func(string, string) (string, error) { return "tok", nil },
		MeFn:       func() (*models.User, error) { return &models.User{Email: "a@x.com"}, nil },
	}
	n := &fakeNotifier{}
	reload := &fakeReloader{}
	auth := NewAuthService(fc, sess, reload, n, nil)

	require.NoError(t, auth.Register(context.Background(), "a@x.com", "Passw0rd"))
	assert.Equal(t, "tok", sess.Credential())
	assert.Equal(t, 1, reload.Count())
	assert.Equal(t, []string{"register", "me"}, fc.Calls())
	assert.Equal(t, notify.Notification{Message: msgRegistered, Severity: notify.Success}, n.Last())
}

func TestRegister_DuplicateBlocksEmail(t *testing.T) {
	for _, detail := range []string{"Email already registered", "Пользователь уже зарегистрирован"} {
		t.Run(detail, func(t *testing.T) {
			ctx := context.Background()
			sess := newSession(t)
			fc := &fakeClient{
				RegisterFn: func(string, string) (string, error) {
					return "", &client.APIError{Status: 409, Message: detail}
				},
			}
			n := &fakeNotifier{}
			auth := NewAuthService(fc, sess, &fakeReloader{}, n, nil)

			err := auth.Register(ctx, "a@x.com", "Passw0rd")
			require.ErrorIs(t, err, ErrEmailBlocked)
			require.ErrorIs(t, err, client.ErrConflict)
			assert.Equal(t, notify.Notification{Message: msgEmailTaken, Severity: notify.Error}, n.Last())
			assert.False(t, auth.CanRegister(ctx, "a@x.com"))
			assert.True(t, auth.CanRegister(ctx, "b@x.com"))

			err = auth.Register(ctx, "a@x.com", "Passw0rd")
			require.ErrorIs(t, err, ErrEmailBlocked)
			assert.Equal(t, []string{"register"}, fc.Calls(), "blocked email must not reach the server")
		})
	}
}

func TestRegister_OtherFailureNotBlocking(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fc := &fakeClient{
		RegisterFn: func(string, string) (string, error) {
			return "", fmt.Errorf("%w: POST /auth/register: connection refused", client.ErrUnavailable)
		},
	}
	n := &fakeNotifier{}
	auth := NewAuthService(fc, sess, &fakeReloader{}, n, nil)

	err := auth.Register(ctx, "a@x.com", "Passw0rd")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, notify.Error, n.Last().Severity)
	assert.Contains(t, n.Last().Message, "connection refused")
	assert.True(t, auth.CanRegister(ctx, "a@x.com"))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	require.NoError(t, sess.SetCredential(ctx, "tok"))

	visible := true
	sess.Subscribe(func(v bool) { visible = v })

	n := &fakeNotifier{}
	auth := NewAuthService(&fakeClient{}, sess, &fakeReloader{}, n, nil)

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, sess.Authenticated())
	assert.False(t, visible)
	assert.Equal(t, msgNotAuthenticated, auth.Identity())
	assert.Equal(t, notify.Notification{Message: msgLoggedOut, Severity: notify.Info}, n.Last())
}

func TestStart(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Set(ctx, "token", []byte("saved")))

		fc := &fakeClient{MeFn: func() (*models.User, error) { return &models.User{Email: "a@x.com"}, nil }}
		reload := &fakeReloader{}
		fresh := session.NewStore(repo)
		auth := NewAuthService(fc, fresh, reload, &fakeNotifier{}, nil)

		require.NoError(t, auth.Start(ctx))
		assert.Equal(t, "saved", fresh.Credential())
		assert.Equal(t, "Вы вошли: a@x.com", auth.Identity())
		assert.Equal(t, 1, reload.Count())
	})

	t.Run("signed out", func(t *testing.T) {
		fc := &fakeClient{MeFn: func() (*models.User, error) { return nil, errors.New("401") }}
		reload := &fakeReloader{}
		auth := NewAuthService(fc, newSession(t), reload, &fakeNotifier{}, nil)

		require.NoError(t, auth.Start(context.Background()))
		assert.Equal(t, msgNotAuthenticated, auth.Identity())
		assert.Equal(t, 0, reload.Count())
	})
}
