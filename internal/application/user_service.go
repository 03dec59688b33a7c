package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cityride/cityride-backend/internal/domain/entity"
	repo "github.com/cityride/cityride-backend/internal/domain/repository"
	"github.com/cityride/cityride-backend/pkg/helpers"
	"github.com/cityride/cityride-backend/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
)

// Service implements the rider account flows: registration, login,
// profile reads and partial updates, and avatar upload. Side-effect
// clients (GCS, RabbitMQ, Elasticsearch) are optional; a nil client
// disables that side effect.
type Service struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	GCS          *storage.Client
	GCSBucket    string
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESRiderIndex string
}

func NewService(userRepo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	return &Service{Repo: userRepo, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Email    string
	Password string

	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
	AvatarURL  *string

	MarketingConsent  *string
	PushNotifications *string
}

// Register hashes the password, persists a new rider with defaulted
// fields, and issues a session token bound to the new id. The email
// uniqueness check lives in the store: a duplicate surfaces as
// ErrEmailTaken without touching the existing record.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &entity.User{
		Email:             in.Email,
		PasswordHash:      hash,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Phone:             in.Phone,
		Address:           in.Address,
		City:              in.City,
		PostalCode:        in.PostalCode,
		AvatarURL:         in.AvatarURL,
		LoyaltyPoints:     entity.DefaultLoyaltyPoints,
		MarketingConsent:  entity.DefaultMarketingConsent,
		PushNotifications: entity.DefaultPushNotifications,
	}
	if in.MarketingConsent != nil {
		u.MarketingConsent = *in.MarketingConsent
	}
	if in.PushNotifications != nil {
		u.PushNotifications = *in.PushNotifications
	}

	if err := s.Repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.JWT.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, "", err
	}

	s.indexRider(ctx, u)
	s.publishWelcome(ctx, u)

	return u, token, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

// GetProfile resolves the authenticated rider's own record. The auth gate
// only proves the token; the record may have vanished out-of-band.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfileInput carries the partial update. A nil field means "leave
// unchanged"; a non-nil field (including a pointer to "") overwrites.
// Email and password are not representable here.
type UpdateProfileInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
	AvatarURL  *string

	LoyaltyPoints     *string
	MarketingConsent  *string
	PushNotifications *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if in.FirstName != nil {
		u.FirstName = in.FirstName
	}
	if in.LastName != nil {
		u.LastName = in.LastName
	}
	if in.Phone != nil {
		u.Phone = in.Phone
	}
	if in.Address != nil {
		u.Address = in.Address
	}
	if in.City != nil {
		u.City = in.City
	}
	if in.PostalCode != nil {
		u.PostalCode = in.PostalCode
	}
	if in.AvatarURL != nil {
		u.AvatarURL = in.AvatarURL
	}
	if in.LoyaltyPoints != nil {
		u.LoyaltyPoints = *in.LoyaltyPoints
	}
	if in.MarketingConsent != nil {
		u.MarketingConsent = *in.MarketingConsent
	}
	if in.PushNotifications != nil {
		u.PushNotifications = *in.PushNotifications
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.indexRider(ctx, u)
	return u, nil
}

// UploadAvatar streams an image to GCS and stores its public URL on the
// rider's profile.
func (s *Service) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", ErrUserNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, "", errors.New("gcs not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, "", err
	}

	u.AvatarURL = &url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, "", err
	}
	s.indexRider(ctx, u)
	return u, url, nil
}

// publishWelcome enqueues the welcome email for the worker. Best effort;
// registration never fails because the broker is down.
func (s *Service) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	first := ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"FirstName": first, "Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}

// indexRider mirrors the latest profile into Elasticsearch for the
// support team's rider lookup. Best effort, short timeout.
func (s *Service) indexRider(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESRiderIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"phone":      u.Phone,
		"city":       u.City,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESRiderIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}
