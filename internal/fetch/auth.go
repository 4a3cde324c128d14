package fetch

import (
	"context"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
)

// AuthGateway is the admin-identity slice of the remote API.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	UpdateAdmin(ctx context.Context, name, imagePath string) (model.User, error)
}

// Auth drives the session lifecycle: login, logout, profile update. Forced
// invalidation on bad-token responses is not here — the gateway hook clears
// the session from whatever call site trips it.
type Auth struct {
	Session  Sessions
	Gateway  AuthGateway
	Notifier Notifier
}

// Login authenticates and persists the session.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	res, err := a.Gateway.Login(ctx, email, password)
	if err != nil {
		if a.Notifier != nil {
			a.Notifier.NotifyError(err.Error())
		}
		return err
	}
	if err := a.Session.Set(res.User, res.Token); err != nil {
		return err
	}
	if a.Notifier != nil {
		a.Notifier.Notify("Signed in as " + res.User.Email)
	}
	return nil
}

// Logout clears the persisted session.
func (a *Auth) Logout() error {
	return a.Session.Clear()
}

// UpdateProfile edits the admin name/avatar and refreshes the stored
// identity. The credential is untouched.
func (a *Auth) UpdateProfile(ctx context.Context, name, imagePath string) error {
	user, err := a.Gateway.UpdateAdmin(ctx, name, imagePath)
	if err != nil {
		notifyFailure(a.Notifier, err)
		return err
	}
	if err := a.Session.UpdateUser(user); err != nil {
		return err
	}
	if a.Notifier != nil {
		a.Notifier.Notify("Profile updated")
	}
	return nil
}
