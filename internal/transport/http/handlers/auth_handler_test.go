package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
)

type sessionStoreStub struct {
	deleted []string
}

func (s *sessionStoreStub) Create(context.Context, authsvc.SessionRecord, string) error {
	return nil
}

func (s *sessionStoreStub) GetSession(context.Context, string) (authsvc.SessionRecord, error) {
	return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
}

func (s *sessionStoreStub) GetByRefreshToken(context.Context, string) (authsvc.SessionRecord, error) {
	return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
}

func (s *sessionStoreStub) RotateRefresh(context.Context, string, string, time.Time) error {
	return nil
}

func (s *sessionStoreStub) DeleteSession(_ context.Context, sid string) error {
	s.deleted = append(s.deleted, sid)
	return nil
}

type releaserStub struct {
	released []string
}

func (r *releaserStub) ReleaseWorkflow(operator string) {
	r.released = append(r.released, operator)
}

func TestLogoutReleasesOperatorWorkflow(t *testing.T) {
	sessions := &sessionStoreStub{}
	svc := authsvc.NewService(authsvc.NewJWTManager("secret", 0), sessions, nil, 0)
	releaser := &releaserStub{}
	handler := NewAuthHandler(svc, releaser)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		Operator: "kim.op",
		SID:      "sid-1",
		Role:     "OPERATOR",
	}))
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "sid-1" {
		t.Fatalf("logout must delete the session, got %v", sessions.deleted)
	}
	if len(releaser.released) != 1 || releaser.released[0] != "kim.op" {
		t.Fatalf("logout must release the operator's workflow, got %v", releaser.released)
	}
}

func TestLogoutWithoutReleaserStillSucceeds(t *testing.T) {
	sessions := &sessionStoreStub{}
	svc := authsvc.NewService(authsvc.NewJWTManager("secret", 0), sessions, nil, 0)
	handler := NewAuthHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		Operator: "kim.op",
		SID:      "sid-1",
	}))
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
