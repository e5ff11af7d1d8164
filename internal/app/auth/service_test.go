package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domainauth "stayly/internal/domain/auth"
	domainuser "stayly/internal/domain/user"
	"stayly/internal/infra/security"
	"stayly/internal/infra/storage/memory"
)

func newService(t *testing.T) (*Service, *memory.SessionStore) {
	t.Helper()
	sessions := memory.NewSessionStore()
	svc := &Service{
		Users:      memory.NewUserRepository(),
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}
	return svc, sessions
}

func TestRegisterAndResolve(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterParams{
		Email:      " Host@Example.COM ",
		Name:       "Pat",
		Password:   "correct horse",
		WantToHost: true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Email != "host@example.com" {
		t.Fatalf("email = %q, want normalized", result.User.Email)
	}
	if !result.User.HasRole(domainuser.RoleHost) || !result.User.HasRole(domainuser.RoleGuest) {
		t.Fatalf("roles = %v, want guest and host", result.User.Roles)
	}
	if result.Token == "" {
		t.Fatal("registration must issue a session token")
	}

	resolved, err := svc.ResolveToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.User.ID != result.User.ID {
		t.Fatalf("resolved user = %s, want %s", resolved.User.ID, result.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	params := RegisterParams{Email: "guest@example.com", Name: "Pat", Password: "correct horse"}
	if _, err := svc.Register(ctx, params); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, params); !errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
		t.Fatalf("err = %v, want ErrEmailAlreadyUsed", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "guest@example.com",
		Name:     "Pat",
		Password: "short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Email: "guest@example.com", Name: "Pat", Password: "correct horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, LoginParams{Email: "GUEST@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login must issue a token")
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "guest@example.com", Password: "wrong password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterParams{Email: "guest@example.com", Name: "Pat", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	blocked := *result.User
	blocked.Blocked = true
	if err := svc.Users.Save(ctx, &blocked); err != nil {
		t.Fatalf("block user: %v", err)
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "guest@example.com", Password: "correct horse"}); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("err = %v, want ErrUserBlocked", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterParams{Email: "guest@example.com", Name: "Pat", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ResolveToken(ctx, result.Token); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Fatalf("resolve after logout err = %v, want ErrSessionNotFound", err)
	}
}

func TestResolveExpiredSession(t *testing.T) {
	svc, sessions := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterParams{Email: "guest@example.com", Name: "Pat", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stale := &domainauth.Session{
		Token:     "stale-token",
		UserID:    result.User.ID,
		Roles:     result.User.Roles,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := sessions.Save(ctx, stale); err != nil {
		t.Fatalf("save stale session: %v", err)
	}

	if _, err := svc.ResolveToken(ctx, "stale-token"); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
