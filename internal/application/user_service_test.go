package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cityride/cityride-backend/internal/infrastructure/inmemory"
	"github.com/cityride/cityride-backend/pkg/helpers"
)

func newTestService() (*Service, *inmemory.UserRepository) {
	repo := inmemory.NewUserRepository()
	jwt := helpers.NewJWTManager("test-secret", 168*time.Hour)
	return NewService(repo, jwt, nil), repo
}

func strptr(s string) *string { return &s }

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}
	if u.LoyaltyPoints != "0" || u.MarketingConsent != "false" || u.PushNotifications != "true" {
		t.Errorf("defaults not applied: %q %q %q", u.LoyaltyPoints, u.MarketingConsent, u.PushNotifications)
	}

	// Token from register resolves to the same user
	uid, err := svc.JWT.Verify(token)
	if err != nil || uid != u.ID {
		t.Fatalf("register token does not resolve: uid=%q err=%v", uid, err)
	}

	lu, ltoken, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if lu.ID != u.ID {
		t.Errorf("login resolved a different user")
	}
	uid, err = svc.JWT.Verify(ltoken)
	if err != nil || uid != u.ID {
		t.Fatalf("login token does not resolve: uid=%q err=%v", uid, err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", City: strptr("Poznań")})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "other-password"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// First record untouched: original password still logs in
	u, _, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("original credentials no longer work: %v", err)
	}
	if u.ID != first.ID || u.City == nil || *u.City != "Poznań" {
		t.Errorf("first record was altered by the conflicting register")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, errWrongPwd := svc.Login(ctx, "a@x.com", "wrong")
	_, _, errNoUser := svc.Login(ctx, "nobody@x.com", "secret1")

	if !errors.Is(errWrongPwd, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrongPwd)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", errNoUser)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Email:     "a@x.com",
		Password:  "secret1",
		FirstName: strptr("Anna"),
		Phone:     strptr("+48123456789"),
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	hashBefore := u.PasswordHash

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{City: strptr("Poznań")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.City == nil || *updated.City != "Poznań" {
		t.Errorf("city not updated")
	}
	if updated.Email != "a@x.com" {
		t.Errorf("email changed by profile update")
	}
	if updated.PasswordHash != hashBefore {
		t.Errorf("password hash changed by profile update")
	}
	if updated.FirstName == nil || *updated.FirstName != "Anna" {
		t.Errorf("omitted firstName was altered")
	}
	if updated.Phone == nil || *updated.Phone != "+48123456789" {
		t.Errorf("omitted phone was altered")
	}
	if !updated.UpdatedAt.After(u.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v -> %v", u.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("createdAt changed on update")
	}
}

func TestUpdateProfileExplicitEmpty(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", City: strptr("Poznań")})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Explicit "" is a value, not an omission
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{City: strptr("")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.City == nil || *updated.City != "" {
		t.Errorf("explicit empty city was not stored")
	}
}

func TestGetProfileGoneUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	repo.Delete(u.ID)

	if _, err := svc.GetProfile(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{City: strptr("Poznań")}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on update, got %v", err)
	}
}
