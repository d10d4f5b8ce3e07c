package operatorauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type memorySessionStore struct {
	sessions map[string]SessionRecord
	refresh  map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions: map[string]SessionRecord{},
		refresh:  map[string]string{},
	}
}

func (s *memorySessionStore) Create(_ context.Context, session SessionRecord, refreshToken string) error {
	s.sessions[session.SID] = session
	s.refresh[refreshToken] = session.SID
	return nil
}

func (s *memorySessionStore) GetSession(_ context.Context, sid string) (SessionRecord, error) {
	session, ok := s.sessions[sid]
	if !ok {
		return SessionRecord{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) GetByRefreshToken(_ context.Context, refreshToken string) (SessionRecord, error) {
	sid, ok := s.refresh[refreshToken]
	if !ok {
		return SessionRecord{}, ErrRefreshNotFound
	}
	return s.sessions[sid], nil
}

func (s *memorySessionStore) RotateRefresh(_ context.Context, oldToken, newToken string, expiresAt time.Time) error {
	sid, ok := s.refresh[oldToken]
	if !ok {
		return ErrRefreshNotFound
	}
	delete(s.refresh, oldToken)
	s.refresh[newToken] = sid
	session := s.sessions[sid]
	session.ExpiresAt = expiresAt
	s.sessions[sid] = session
	return nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, sid string) error {
	for token, owner := range s.refresh {
		if owner == sid {
			delete(s.refresh, token)
		}
	}
	delete(s.sessions, sid)
	return nil
}

type staticOperatorStore struct {
	records map[string]OperatorRecord
}

func (s staticOperatorStore) FindByUsername(_ context.Context, username string) (OperatorRecord, error) {
	record, ok := s.records[username]
	if !ok {
		return OperatorRecord{}, errors.New("operator not found")
	}
	return record, nil
}

func newTestService(t *testing.T, operators map[string]OperatorRecord) (*Service, *memorySessionStore) {
	t.Helper()
	sessions := newMemorySessionStore()
	svc := NewService(
		NewJWTManager("test-secret", 15*time.Minute),
		sessions,
		staticOperatorStore{records: operators},
		time.Hour,
	)
	return svc, sessions
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	svc, _ := newTestService(t, map[string]OperatorRecord{
		"kim.op": {ID: 1, Username: "kim.op", PasswordHash: hashPassword(t, "secret1"), Role: "OPERATOR", Active: true},
	})

	result, err := svc.Login(context.Background(), "kim.op", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Operator != "kim.op" || result.Role != "OPERATOR" {
		t.Fatalf("unexpected auth result: %+v", result)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.Operator != "kim.op" {
		t.Fatalf("unexpected claims operator: %s", claims.Operator)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, map[string]OperatorRecord{
		"kim.op": {Username: "kim.op", PasswordHash: hashPassword(t, "secret1"), Role: "OPERATOR", Active: true},
	})

	_, err := svc.Login(context.Background(), "kim.op", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsInactiveOperator(t *testing.T) {
	svc, _ := newTestService(t, map[string]OperatorRecord{
		"old.op": {Username: "old.op", PasswordHash: hashPassword(t, "secret1"), Role: "OPERATOR", Active: false},
	})

	_, err := svc.Login(context.Background(), "old.op", "secret1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestService(t, map[string]OperatorRecord{
		"kim.op": {Username: "kim.op", PasswordHash: hashPassword(t, "secret1"), Role: "OPERATOR", Active: true},
	})

	first, err := svc.Login(context.Background(), "kim.op", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old refresh token must be dead, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t, map[string]OperatorRecord{
		"kim.op": {Username: "kim.op", PasswordHash: hashPassword(t, "secret1"), Role: "OPERATOR", Active: true},
	})

	result, err := svc.Login(context.Background(), "kim.op", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(context.Background(), result.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("token must be rejected after logout, got %v", err)
	}
}
