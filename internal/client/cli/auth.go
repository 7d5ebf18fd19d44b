package cli

import (
	"context"
	"errors"
	"os"
	"regexp"

	"github.com/bobadragon/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// validateCredentials applies the sign-up rules before any request is made:
// no blank fields, a plausible email, and a password of at least six
// characters. The first violation found is reported to the user.
func (a *App) validateCredentials(name, email string, password []byte) bool {
	if name == "" || email == "" || len(password) == 0 {
		a.renderer.Notify("Please fill in all fields.", true)
		return false
	}
	if !emailRe.MatchString(email) {
		a.renderer.Notify("Please enter a valid email address.", true)
		return false
	}
	if len(password) < minPasswordLen {
		a.renderer.Notify("Password must be at least 6 characters.", true)
		return false
	}
	return true
}

// Register prompts for a name, email and password and attempts to create a
// new account. Validation failures and a duplicate email produce a notice
// and leave the user on the auth wall; on success the user is signed in
// right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.validateCredentials(name, email, password) {
		return nil
	}

	if err := a.api.Register(ctx, name, email, password); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			a.renderer.Notify("This email is already registered. Try signing in.", true)
			return nil
		}
		a.renderer.Notify("Could not create your account. Please try again.", true)
		return err
	}

	return a.signIn(ctx, email, password)
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		a.renderer.Notify("Please fill in all fields.", true)
		return nil
	}

	return a.signIn(ctx, email, password)
}

func (a *App) signIn(ctx context.Context, email string, password []byte) error {
	sess, err := a.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthenticated):
			a.renderer.Notify("Wrong email or password.", true)
			return nil
		case errors.Is(err, common.ErrUnavailable):
			a.renderer.Notify("Server unavailable. Please try again.", true)
			return nil
		}
		return err
	}

	if err := a.sessions.Save(ctx, sess); err != nil {
		a.log.Warn(ctx, "failed to persist session", "error", err)
	}

	if err := a.session.HandleSignedIn(ctx, sess.UID); err != nil {
		return err
	}
	a.uid = sess.UID
	return nil
}

// Logout signs the user out on the server, drops the cached session and
// resets all per-session state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.SignOut(ctx); err != nil {
		a.log.Warn(ctx, "server sign-out failed", "error", err)
	}
	if err := a.sessions.Drop(ctx); err != nil {
		a.log.Warn(ctx, "failed to drop cached session", "error", err)
	}
	a.uid = ""
	a.session.HandleSignedOut(ctx)
	return nil
}
