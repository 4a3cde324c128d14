package fetch

import (
	"context"
	"testing"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
)

type fakeAuthGateway struct {
	loginResult api.LoginResult
	loginErr    error

	updated   model.User
	updateErr error
}

func (g *fakeAuthGateway) Login(_ context.Context, email, password string) (api.LoginResult, error) {
	if g.loginErr != nil {
		return api.LoginResult{}, g.loginErr
	}
	return g.loginResult, nil
}

func (g *fakeAuthGateway) UpdateAdmin(_ context.Context, name, imagePath string) (model.User, error) {
	if g.updateErr != nil {
		return model.User{}, g.updateErr
	}
	u := g.updated
	u.Name = name
	return u, nil
}

func TestLoginPersistsSession(t *testing.T) {
	sess := &fakeSessions{}
	n := &recordingNotifier{}
	a := &Auth{
		Session: sess,
		Gateway: &fakeAuthGateway{loginResult: api.LoginResult{
			User:  model.User{ID: "u-1", Email: "admin@example.com"},
			Token: "issued-token",
		}},
		Notifier: n,
	}

	if err := a.Login(testCtx, "admin@example.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.token != "issued-token" {
		t.Fatalf("token not persisted, got %q", sess.token)
	}
	if sess.user.Email != "admin@example.com" {
		t.Fatalf("user not persisted, got %+v", sess.user)
	}
	if len(n.infos) != 1 || n.infos[0] != "Signed in as admin@example.com" {
		t.Fatalf("expected sign-in notice, got %v", n.infos)
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	sess := &fakeSessions{}
	n := &recordingNotifier{}
	a := &Auth{
		Session:  sess,
		Gateway:  &fakeAuthGateway{loginErr: &api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "Invalid email or password"}},
		Notifier: n,
	}

	if err := a.Login(testCtx, "admin@example.com", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	if sess.token != "" {
		t.Fatal("failed login must not persist anything")
	}
	if len(n.errors) != 1 || n.errors[0] != "Invalid email or password" {
		t.Fatalf("expected server message, got %v", n.errors)
	}
}

func TestUpdateProfileKeepsCredential(t *testing.T) {
	sess := &fakeSessions{token: "tok", user: model.User{ID: "u-1", Name: "Old", Email: "a@b.c"}}
	a := &Auth{
		Session:  sess,
		Gateway:  &fakeAuthGateway{updated: model.User{ID: "u-1", Email: "a@b.c"}},
		Notifier: &recordingNotifier{},
	}

	if err := a.UpdateProfile(testCtx, "New Name", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.user.Name != "New Name" {
		t.Fatalf("user not refreshed, got %+v", sess.user)
	}
	if sess.token != "tok" {
		t.Fatal("profile update must not touch the token")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	sess := &fakeSessions{token: "tok", user: model.User{ID: "u-1"}}
	a := &Auth{Session: sess, Gateway: &fakeAuthGateway{}, Notifier: NopNotifier{}}

	if err := a.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.token != "" {
		t.Fatal("logout must clear the token")
	}
}
