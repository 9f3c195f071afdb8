package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain/entity"
	"confsite/pkg/helpers"
)

func newTestAuthService(t *testing.T, repo *fakeUserRepo) (*AuthService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sessions := helpers.NewSessionManager("test-session-secret", time.Hour)
	return NewAuthService(repo, rdb, sessions, nil, 15*time.Minute, nil), mr
}

func TestRequestLoginToken_StoresTokenWithExpiry(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{Login: "jdoe", Firstname: "Jane"}, "jane@doe.example")

	svc, _ := newTestAuthService(t, repo)

	require.NoError(t, svc.RequestLoginToken(context.Background(), "jane@doe.example"))

	stored := repo.users["jdoe"]
	assert.Len(t, stored.Token, 6)
	for _, c := range stored.Token {
		assert.True(t, strings.ContainsRune(tokenAlphabet, c), "token char %q", c)
	}
	assert.True(t, stored.TokenExpiration.After(time.Now().Add(10*time.Minute)))
}

func TestRequestLoginToken_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t, newFakeUserRepo())

	err := svc.RequestLoginToken(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestConfirmLogin_OpensSession(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{
		Login:           "jdoe",
		Role:            entity.RoleUser,
		Token:           "ABC234",
		TokenExpiration: time.Now().Add(10 * time.Minute),
	}, "jane@doe.example")

	svc, mr := newTestAuthService(t, repo)

	signed, exp, err := svc.ConfirmLogin(context.Background(), "jane@doe.example", "ABC234")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.True(t, exp.After(time.Now()))

	// The cookie token parses back and matches the server-side session.
	claims, err := svc.Sessions.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims.Login)

	sess := mr.HGet(SessionKey("jdoe"), "sid")
	assert.Equal(t, claims.SessionID, sess)
	assert.Equal(t, "jane@doe.example", mr.HGet(SessionKey("jdoe"), "email"))
}

func TestConfirmLogin_WrongToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{
		Login:           "jdoe",
		Token:           "ABC234",
		TokenExpiration: time.Now().Add(10 * time.Minute),
	}, "jane@doe.example")

	svc, _ := newTestAuthService(t, repo)

	_, _, err := svc.ConfirmLogin(context.Background(), "jane@doe.example", "WRONG1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmLogin_ExpiredToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{
		Login:           "jdoe",
		Token:           "ABC234",
		TokenExpiration: time.Now().Add(-time.Minute),
	}, "jane@doe.example")

	svc, _ := newTestAuthService(t, repo)

	_, _, err := svc.ConfirmLogin(context.Background(), "jane@doe.example", "ABC234")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t, newFakeUserRepo())

	_, _, err := svc.ConfirmLogin(context.Background(), "nobody@example.com", "ABC234")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_DropsSession(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.add(&entity.User{
		Login:           "jdoe",
		Token:           "ABC234",
		TokenExpiration: time.Now().Add(10 * time.Minute),
	}, "jane@doe.example")

	svc, mr := newTestAuthService(t, repo)

	_, _, err := svc.ConfirmLogin(context.Background(), "jane@doe.example", "ABC234")
	require.NoError(t, err)
	require.True(t, mr.Exists(SessionKey("jdoe")))

	svc.Logout(context.Background(), "jdoe")
	assert.False(t, mr.Exists(SessionKey("jdoe")))
}
