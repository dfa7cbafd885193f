package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"talentsift/internal/pkg/jwt"
	ucauth "talentsift/internal/usecase/auth"
)

func newAuthFixture() (*Auth, *fakeUserRepo, jwt.Service) {
	users := newFakeUserRepo()
	jwtSvc := jwt.NewHMACService("access-secret-test", "refresh-secret-test", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(users, jwtSvc), users, jwtSvc
}

func TestAuth_Register_Success(t *testing.T) {
	uc, users, jwtSvc := newAuthFixture()

	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Name:     "Dana Smith",
		Email:    "Dana.Smith@Example.COM",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if usr.Email != "dana.smith@example.com" {
		t.Errorf("email not normalized: %q", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Error("returned user must not carry the password hash")
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := jwtSvc.ValidateToken(access)
	if err != nil {
		t.Fatalf("issued access token does not validate: %v", err)
	}
	if claims.UserID != usr.ID {
		t.Errorf("token user = %s, want %s", claims.UserID, usr.ID)
	}

	stored, err := users.GetByID(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "correct-horse" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	in := ucauth.RegisterInput{Name: "A", Email: "dup@example.com", Password: "password123"}
	if _, _, _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, _, err := uc.Register(context.Background(), in)
	if !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_Register_WeakPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "weak@example.com",
		Password: "short",
	})
	if !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuth_Login(t *testing.T) {
	uc, _, _ := newAuthFixture()

	reg := ucauth.RegisterInput{Email: "login@example.com", Password: "password123"}
	if _, _, _, err := uc.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	usr, access, refresh, err := uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "LOGIN@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if usr.Email != "login@example.com" || access == "" || refresh == "" {
		t.Errorf("unexpected login result: %q %q %q", usr.Email, access, refresh)
	}

	_, _, _, err = uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, _, _, err = uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("unknown email should read as invalid credentials, got %v", err)
	}
}

func TestAuth_Refresh(t *testing.T) {
	uc, _, jwtSvc := newAuthFixture()

	_, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "refresh@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newAccess, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatal("expected a fresh token pair")
	}
	if _, err := jwtSvc.ValidateToken(newAccess); err != nil {
		t.Errorf("refreshed access token does not validate: %v", err)
	}

	// An access token is not a refresh credential.
	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for garbage, got %v", err)
	}
}

func TestAuth_Refresh_UnknownUser(t *testing.T) {
	uc, users, _ := newAuthFixture()

	usr, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "gone@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	users.mu.Lock()
	delete(users.users, usr.ID)
	users.mu.Unlock()

	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for deleted account, got %v", err)
	}
}
