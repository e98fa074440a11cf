package user

import (
	"context"
	"errors"

	"github.com/examflow/examflow/internal/config"
)

type Service interface {
	Get(ctx context.Context, id string) (*User, error)
	// UpsertFromGoogle stores the profile delivered by the OAuth callback.
	UpsertFromGoogle(ctx context.Context, id, email, name, picture string) error
	// SaveAIKey encrypts and stores the user's AI credential.
	SaveAIKey(ctx context.Context, id, key string) error
	// LoadAIKey returns the decrypted credential, or "" when none is stored.
	LoadAIKey(ctx context.Context, id string) (string, error)
	ClearAIKey(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpsertFromGoogle(ctx context.Context, id, email, name, picture string) error {
	return s.repo.UpsertProfile(ctx, &User{ID: id, Email: email, Name: name, Picture: picture})
}

func (s *service) SaveAIKey(ctx context.Context, id, key string) error {
	encrypted, err := config.Encrypt(key)
	if err != nil {
		return err
	}
	return s.repo.SetEncryptedAIKey(ctx, id, encrypted)
}

func (s *service) LoadAIKey(ctx context.Context, id string) (string, error) {
	u, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if u.EncryptedAIKey == "" {
		return "", nil
	}
	key, err := config.Decrypt(u.EncryptedAIKey)
	if err != nil {
		// An undecryptable key is as good as absent; the caller falls back to
		// other credential sources.
		config.WithContext(ctx).WithError(err).WithField("user_id", id).Warn("stored AI key is unreadable")
		return "", nil
	}
	return key, nil
}

func (s *service) ClearAIKey(ctx context.Context, id string) error {
	return s.repo.ClearEncryptedAIKey(ctx, id)
}
