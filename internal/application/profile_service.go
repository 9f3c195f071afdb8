package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"confsite/internal/domain/entity"
	"confsite/internal/domain/repository"
	"confsite/pkg/cryptox"
	"confsite/pkg/helpers"
)

var ErrUserNotFound = errors.New("user not found")

const profileCacheTTL = 10 * time.Minute

func profileCacheKey(login string) string {
	return "user:profile:" + login
}

// ProfileService orchestrates profile reads and the edit/save path.
type ProfileService struct {
	Repo         repository.UserRepository
	Talks        repository.TalkRepository
	Crypto       *cryptox.Encryptor
	Redis        *redis.Client
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
}

func NewProfileService(repo repository.UserRepository, talks repository.TalkRepository,
	crypto *cryptox.Encryptor, rdb *redis.Client, es *elasticsearch.Client,
	esUsersIndex string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		Repo:         repo,
		Talks:        talks,
		Crypto:       crypto,
		Redis:        rdb,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Logger:       logger,
	}
}

// FindByIdentifier resolves a user by numeric legacy id, falling back to a
// login lookup when the path segment is not a number. A malformed number is
// not an error, it just means "this is a login".
func (s *ProfileService) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		if u, err := s.Repo.FindByLegacyID(ctx, id); err == nil {
			return u, nil
		}
	}
	login := identifier
	if decoded, err := url.PathUnescape(identifier); err == nil {
		login = decoded
	}
	return s.findOneCached(ctx, login)
}

// FindByEmail resolves the current user from the session's plaintext email.
func (s *ProfileService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *ProfileService) findOneCached(ctx context.Context, login string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(login), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	u, err := s.Repo.FindOne(ctx, login)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileCacheKey(login), u, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("login", login).Warn("profile cache write failed")
		}
	}
	return u, nil
}

// SaveProfile runs the core write path: build the candidate from the loaded
// user plus the form, validate everything, and persist only when the error
// map came back empty. The candidate is returned either way so a failed
// submission can re-render with the submitted values prefilled.
func (s *ProfileService) SaveProfile(ctx context.Context, existing *entity.User, form ProfileForm) (*entity.User, ValidationErrors, error) {
	candidate, errs, err := ApplyProfileEdits(existing, form, s.Crypto)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) > 0 {
		return candidate, errs, nil
	}

	if err := s.Repo.Save(ctx, candidate); err != nil {
		return nil, nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, profileCacheKey(candidate.Login)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("login", candidate.Login).Warn("profile cache invalidation failed")
		}
	}
	s.IndexUser(ctx, candidate)
	return candidate, nil, nil
}

// TalksFor loads the talks a user appears in as speaker.
func (s *ProfileService) TalksFor(ctx context.Context, login string) ([]entity.Talk, error) {
	return s.Talks.FindBySpeakerID(ctx, []string{login})
}

// DecryptEmail returns the plaintext email, or empty when it cannot be
// recovered. Display degrades gracefully; nothing downstream needs to fail.
func (s *ProfileService) DecryptEmail(u *entity.User) string {
	if u.Email == "" {
		return ""
	}
	plain, err := s.Crypto.Decrypt(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("login", u.Login).Warn("email decrypt failed")
		}
		return ""
	}
	return plain
}

// IndexUser indexes the public fields of a user for search. Failures are
// logged and swallowed; search lags rather than breaking the save path.
func (s *ProfileService) IndexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"login":     u.Login,
		"firstname": u.Firstname,
		"lastname":  u.Lastname,
		"company":   u.Company,
		"role":      u.Role,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.Login, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("login", u.Login).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("login", u.Login).Warn("es index response error")
	}
}

// SearchUsers performs a multi_match search over name and company fields.
func (s *ProfileService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"lastname^2", "firstname", "company"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
