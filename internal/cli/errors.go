package cli

import (
	"errors"
	"fmt"
	"strings"

	"craveboard-cli/internal/model"
)

var errNotLoggedIn = errors.New("not logged in; run `craveboard login --email ... --password ...`")

func validateEmail(email string) error {
	if !model.ValidEmail(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

type invalidFlagError struct {
	flag    string
	value   string
	allowed []string
}

func (e invalidFlagError) Error() string {
	return fmt.Sprintf("invalid --%s %q (allowed: %s)", e.flag, e.value, strings.Join(e.allowed, ", "))
}

func errInvalidFlag(flag, value string, allowed ...string) error {
	return invalidFlagError{flag: flag, value: value, allowed: allowed}
}
