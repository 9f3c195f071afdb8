package application

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"confsite/internal/domain/repository"
	"confsite/pkg/helpers"
	"confsite/pkg/mailer"
)

var (
	ErrInvalidToken = errors.New("invalid or expired login token")
)

func SessionKey(login string) string {
	return "user:session:" + login
}

// AuthService implements passwordless token login: a short code is emailed
// to the user, and confirming it opens a server-side session.
type AuthService struct {
	Repo       repository.UserRepository
	Redis      *redis.Client
	Sessions   *helpers.SessionManager
	Publisher  *helpers.RabbitPublisher
	TokenTTL   time.Duration
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, rdb *redis.Client,
	sessions *helpers.SessionManager, pub *helpers.RabbitPublisher,
	tokenTTL time.Duration, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:      repo,
		Redis:     rdb,
		Sessions:  sessions,
		Publisher: pub,
		TokenTTL:  tokenTTL,
		Logger:    logger,
	}
}

const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newLoginToken() (string, error) {
	out := make([]byte, 6)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}

// RequestLoginToken generates a fresh token for the account behind email,
// persists it with its expiration, and queues the token email.
func (s *AuthService) RequestLoginToken(ctx context.Context, email string) error {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	token, err := newLoginToken()
	if err != nil {
		return err
	}
	u.Token = token
	u.TokenExpiration = time.Now().Add(s.TokenTTL)
	if err := s.Repo.Save(ctx, u); err != nil {
		return err
	}

	if s.Publisher != nil {
		job := mailer.EmailJob{
			To:       email,
			Template: mailer.TemplateLoginToken,
			Data: map[string]any{
				"Firstname": u.Firstname,
				"Token":     token,
				"ExpiresAt": u.TokenExpiration.Format(time.RFC1123),
			},
		}
		if err := s.Publisher.PublishJSON(ctx, job); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("login", u.Login).Error("queue login token email failed")
			}
			return err
		}
	}
	return nil
}

// ConfirmLogin checks the submitted token against the stored one and, when
// it matches and has not expired, opens a session. The signed cookie token
// and its expiry are returned for the handler to set.
func (s *AuthService) ConfirmLogin(ctx context.Context, email, token string) (string, time.Time, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	if u.Token == "" || u.Token != token || time.Now().After(u.TokenExpiration) {
		return "", time.Time{}, ErrInvalidToken
	}

	sid := uuid.NewString()
	signed, exp, err := s.Sessions.Generate(u.Login, sid)
	if err != nil {
		return "", time.Time{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"login":      u.Login,
			"email":      email,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := SessionKey(u.Login)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.Sessions.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis session write failed")
		}
	}
	return signed, exp, nil
}

// Logout drops the server-side session.
func (s *AuthService) Logout(ctx context.Context, login string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, SessionKey(login)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("login", login).Warn("session delete failed")
	}
}
