package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"confsite/internal/domain/entity"
	"confsite/internal/domain/repository"
	"confsite/pkg/cryptox"
	"confsite/pkg/helpers"
)

var ErrLoginTaken = errors.New("login already taken")

// UserService backs the JSON user API and avatar uploads.
type UserService struct {
	Repo      repository.UserRepository
	Crypto    *cryptox.Encryptor
	Profiles  *ProfileService
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, crypto *cryptox.Encryptor,
	profiles *ProfileService, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:      repo,
		Crypto:    crypto,
		Profiles:  profiles,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
	}
}

// UserDTO is the JSON API shape of a user. The plaintext email never leaves
// the service; only the content hash does.
type UserDTO struct {
	Login       string                     `json:"login"`
	Firstname   string                     `json:"firstname"`
	Lastname    string                     `json:"lastname"`
	Company     string                     `json:"company,omitempty"`
	Description map[entity.Language]string `json:"description"`
	EmailHash   string                     `json:"email_hash"`
	PhotoURL    string                     `json:"photo_url,omitempty"`
	Role        entity.Role                `json:"role"`
	Links       []entity.Link              `json:"links"`
	LegacyID    string                     `json:"legacy_id,omitempty"`
}

func ToUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		Login:       u.Login,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Company:     u.Company,
		Description: u.Description,
		EmailHash:   u.EmailHash,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
		Links:       u.Links,
		LegacyID:    u.LegacyID,
	}
}

func toUserDTOs(users []entity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, ToUserDTO(&users[i]))
	}
	return out
}

func (s *UserService) FindOne(ctx context.Context, login string) (UserDTO, error) {
	u, err := s.Repo.FindOne(ctx, login)
	if err != nil || u == nil {
		return UserDTO{}, ErrUserNotFound
	}
	return ToUserDTO(u), nil
}

func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}

func (s *UserService) ListStaff(ctx context.Context) ([]UserDTO, error) {
	users, err := s.Repo.FindByRoles(ctx, entity.RoleStaff)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}

// FindStaff resolves a single staff member, including staff members on pause.
func (s *UserService) FindStaff(ctx context.Context, login string) (UserDTO, error) {
	u, err := s.Repo.FindOneByRoles(ctx, login, entity.RoleStaff, entity.RoleStaffInPause)
	if err != nil || u == nil {
		return UserDTO{}, ErrUserNotFound
	}
	return ToUserDTO(u), nil
}

// CreateUserInput is the JSON body of POST /api/user.
type CreateUserInput struct {
	Login         string `json:"login" binding:"required,max=30"`
	Firstname     string `json:"firstname" binding:"required,max=30"`
	Lastname      string `json:"lastname" binding:"required,max=30"`
	Email         string `json:"email" binding:"required,email"`
	Company       string `json:"company" binding:"omitempty,max=60"`
	DescriptionFr string `json:"description_fr" binding:"required"`
	DescriptionEn string `json:"description_en" binding:"required"`
	PhotoURL      string `json:"photo_url" binding:"omitempty,url"`
}

// Create registers a new user. The login must be free; emails are encrypted
// before they ever reach the repository.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (UserDTO, error) {
	if existing, err := s.Repo.FindOne(ctx, in.Login); err == nil && existing != nil {
		return UserDTO{}, ErrLoginTaken
	}
	encrypted, err := s.Crypto.Encrypt(in.Email)
	if err != nil {
		return UserDTO{}, err
	}
	u := &entity.User{
		Login:     in.Login,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     encrypted,
		Company:   in.Company,
		Description: map[entity.Language]string{
			entity.French:  in.DescriptionFr,
			entity.English: in.DescriptionEn,
		},
		EmailHash: cryptox.EmailHash(in.Email),
		PhotoURL:  in.PhotoURL,
		Role:      entity.RoleUser,
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		return UserDTO{}, err
	}
	if s.Profiles != nil {
		s.Profiles.IndexUser(ctx, u)
	}
	return ToUserDTO(u), nil
}

// UploadAvatar stores an avatar image in GCS and points the user's photoUrl
// at its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, u *entity.User, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := fmt.Sprintf("avatars/%s/%s%s", u.Login, uuid.NewString(), ext)
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.PhotoURL = url
	if err := s.Repo.Save(ctx, u); err != nil {
		return "", err
	}
	if s.Profiles != nil && s.Profiles.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Profiles.Redis, profileCacheKey(u.Login)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("login", u.Login).Warn("profile cache invalidation failed")
		}
	}
	return url, nil
}
