package cli

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"admin@example.com", false},
		{"  admin@example.com  ", false},
		{"a@b.co", false},
		{"", true},
		{"admin", true},
		{"admin@", true},
		{"admin@example", true},
		{"with space@example.com", true},
	}
	for _, tc := range cases {
		err := validateEmail(tc.in)
		if tc.wantErr && err == nil {
			t.Fatalf("validateEmail(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("validateEmail(%q): unexpected error: %v", tc.in, err)
		}
	}
}

func TestInvalidFlagErrorMessage(t *testing.T) {
	err := errInvalidFlag("category", "SNACKS", "CRAVINGS", "MOOD")
	want := `invalid --category "SNACKS" (allowed: CRAVINGS, MOOD)`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := []string{"login", "logout", "whoami", "profile", "foods", "feedback", "legal", "docs"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %q subcommand", name)
		}
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("CRAVEBOARD_TEST_ENVOR", "")
	if got := envOr("CRAVEBOARD_TEST_ENVOR", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("CRAVEBOARD_TEST_ENVOR", "set")
	if got := envOr("CRAVEBOARD_TEST_ENVOR", "fallback"); got != "set" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestLoginRejectsBadEmailBeforeConnecting(t *testing.T) {
	// No config dir or server needed: validation short-circuits first.
	t.Setenv("CRAVEBOARD_CONFIG_DIR", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"login", "--email", "nope", "--password", "pw"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if !strings.Contains(errOut.String(), "invalid email") {
		t.Fatalf("expected invalid-email message on stderr, got %q", errOut.String())
	}
}
