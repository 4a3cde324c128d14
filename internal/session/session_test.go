package session

import (
	"path/filepath"
	"testing"

	"craveboard-cli/internal/model"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	t.Setenv("CRAVEBOARD_CONFIG_DIR", dir)
	s, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConfigDirEnvOverride(t *testing.T) {
	t.Setenv("CRAVEBOARD_CONFIG_DIR", "/tmp/craveboard-test")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != "/tmp/craveboard-test" {
		t.Fatalf("expected env override, got %q", dir)
	}
}

func TestSessionRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)

	if _, ok := s.Current(); ok {
		t.Fatal("fresh store must start signed out")
	}
	if s.Token() != "" {
		t.Fatal("fresh store must have no token")
	}

	img := "http://cdn/img.png"
	user := model.User{ID: "u-1", Name: "Admin", Email: "a@b.c", Image: &img, Role: "ADMIN"}
	if err := s.Set(user, "tok-123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.Token() != "tok-123" {
		t.Fatalf("expected token after Set, got %q", s.Token())
	}

	// Reopen: the session must survive the restart.
	_ = s.Close()
	s2 := openTestStore(t, dir)
	sess, ok := s2.Current()
	if !ok {
		t.Fatal("expected rehydrated session")
	}
	if sess.Token != "tok-123" || sess.User.Email != "a@b.c" {
		t.Fatalf("rehydrated session wrong: %+v", sess)
	}
	if sess.User.Image == nil || *sess.User.Image != img {
		t.Fatalf("image pointer not restored: %+v", sess.User)
	}
}

func TestSetRejectsEmptyToken(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	if err := s.Set(model.User{ID: "u-1"}, "  "); err == nil {
		t.Fatal("expected error for blank token")
	}
	if _, ok := s.Current(); ok {
		t.Fatal("failed Set must not leave a session behind")
	}
}

func TestClearDropsBothHalves(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)
	if err := s.Set(model.User{ID: "u-1"}, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Token() != "" {
		t.Fatal("expected signed out after Clear")
	}

	_ = s.Close()
	s2 := openTestStore(t, dir)
	if _, ok := s2.Current(); ok {
		t.Fatal("cleared session must not rehydrate")
	}
}

func TestUpdateUserKeepsToken(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)
	if err := s.Set(model.User{ID: "u-1", Name: "Old"}, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.UpdateUser(model.User{ID: "u-1", Name: "New"}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	sess, _ := s.Current()
	if sess.User.Name != "New" || sess.Token != "tok" {
		t.Fatalf("expected new identity with old token, got %+v", sess)
	}

	_ = s.Close()
	s2 := openTestStore(t, dir)
	sess2, ok := s2.Current()
	if !ok || sess2.User.Name != "New" {
		t.Fatalf("identity update not persisted: %+v", sess2)
	}
}

func TestUpdateUserSignedOutIsNoop(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	if err := s.UpdateUser(model.User{ID: "u-1"}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("UpdateUser while signed out must not create a session")
	}
}

func TestCorruptUserBlobReadsAsSignedOut(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)
	if err := s.Set(model.User{ID: "u-1"}, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = s.Close()

	// Corrupt the stored user JSON directly.
	kv, err := openKV(filepath.Join(dir, "craveboard.db"))
	if err != nil {
		t.Fatalf("openKV: %v", err)
	}
	if err := kv.SetAll(map[string][]byte{keyUser: []byte("{not json")}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	_ = kv.Close()

	s2 := openTestStore(t, dir)
	if _, ok := s2.Current(); ok {
		t.Fatal("corrupt session must read as signed out")
	}
	// The corrupt pair is dropped so the next start is clean too.
	if tok, _ := s2.kv.Get(keyToken); len(tok) != 0 {
		t.Fatal("corrupt session must be cleared from storage")
	}
}

func TestKVGetMissingKey(t *testing.T) {
	kv, err := openKV(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("openKV: %v", err)
	}
	defer kv.Close()

	v, err := kv.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil for a missing key, got %v", v)
	}
}
