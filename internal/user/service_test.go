package user

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/examflow/examflow/internal/config"
)

type memRepository struct {
	users map[string]User
}

func newMemRepository() *memRepository {
	return &memRepository{users: map[string]User{}}
}

func (r *memRepository) Get(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memRepository) UpsertProfile(_ context.Context, u *User) error {
	existing, ok := r.users[u.ID]
	if ok {
		existing.Email = u.Email
		existing.Name = u.Name
		existing.Picture = u.Picture
		r.users[u.ID] = existing
		return nil
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memRepository) SetEncryptedAIKey(_ context.Context, id, encrypted string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.EncryptedAIKey = encrypted
	r.users[id] = u
	return nil
}

func (r *memRepository) ClearEncryptedAIKey(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.EncryptedAIKey = ""
	r.users[id] = u
	return nil
}

func TestMain(m *testing.M) {
	os.Setenv("CRYPTO_KEY", "0123456789abcdef0123456789abcdef")
	config.InitCrypto()
	os.Exit(m.Run())
}

func TestUpsertFromGoogle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc := NewService(repo)

	if err := svc.UpsertFromGoogle(ctx, "g-1", "a@example.com", "Ada", "pic"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Profile updates must not disturb a stored credential.
	if err := svc.SaveAIKey(ctx, "g-1", "secret-key"); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpsertFromGoogle(ctx, "g-1", "b@example.com", "Ada L.", "pic2"); err != nil {
		t.Fatal(err)
	}

	u, err := svc.Get(ctx, "g-1")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "b@example.com" || u.Name != "Ada L." {
		t.Errorf("profile not updated: %+v", u)
	}
	key, err := svc.LoadAIKey(ctx, "g-1")
	if err != nil {
		t.Fatal(err)
	}
	if key != "secret-key" {
		t.Errorf("stored key lost across profile update, got %q", key)
	}
}

func TestAIKeyRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc := NewService(repo)

	if err := svc.UpsertFromGoogle(ctx, "g-1", "a@example.com", "Ada", ""); err != nil {
		t.Fatal(err)
	}

	t.Run("EmptyWithoutKey", func(t *testing.T) {
		key, err := svc.LoadAIKey(ctx, "g-1")
		if err != nil || key != "" {
			t.Fatalf("key=%q err=%v, want empty and nil", key, err)
		}
	})

	t.Run("StoredEncrypted", func(t *testing.T) {
		if err := svc.SaveAIKey(ctx, "g-1", "plain-credential"); err != nil {
			t.Fatal(err)
		}
		if stored := repo.users["g-1"].EncryptedAIKey; stored == "plain-credential" || stored == "" {
			t.Errorf("credential stored in the clear: %q", stored)
		}
		key, err := svc.LoadAIKey(ctx, "g-1")
		if err != nil || key != "plain-credential" {
			t.Fatalf("key=%q err=%v", key, err)
		}
	})

	t.Run("Cleared", func(t *testing.T) {
		if err := svc.ClearAIKey(ctx, "g-1"); err != nil {
			t.Fatal(err)
		}
		key, err := svc.LoadAIKey(ctx, "g-1")
		if err != nil || key != "" {
			t.Fatalf("key=%q err=%v after clear", key, err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		key, err := svc.LoadAIKey(ctx, "nobody")
		if err != nil || key != "" {
			t.Fatalf("key=%q err=%v, unknown user must read as no key", key, err)
		}
		if err := svc.SaveAIKey(ctx, "nobody", "k"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CorruptStoredKeyReadsEmpty", func(t *testing.T) {
		u := repo.users["g-1"]
		u.EncryptedAIKey = "not-a-ciphertext"
		repo.users["g-1"] = u
		key, err := svc.LoadAIKey(ctx, "g-1")
		if err != nil || key != "" {
			t.Fatalf("key=%q err=%v, corrupt ciphertext must degrade to no key", key, err)
		}
	})
}
