package fetch

import (
	"context"
	"errors"
	"testing"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
)

type fakeLegalGateway struct {
	docs   model.LegalDocuments
	getErr error

	saved   []model.LegalDocuments
	saveErr error
	gets    int
}

func (g *fakeLegalGateway) GetLegalDocuments(_ context.Context) (model.LegalDocuments, error) {
	g.gets++
	if g.getErr != nil {
		return model.LegalDocuments{}, g.getErr
	}
	return g.docs, nil
}

func (g *fakeLegalGateway) SaveLegalDocuments(_ context.Context, docs model.LegalDocuments) (api.LegalResult, error) {
	if g.saveErr != nil {
		return api.LegalResult{}, g.saveErr
	}
	g.saved = append(g.saved, docs)
	if docs.PrivacyPolicy != nil {
		g.docs.PrivacyPolicy = docs.PrivacyPolicy
	}
	if docs.TermsConditions != nil {
		g.docs.TermsConditions = docs.TermsConditions
	}
	return api.LegalResult{Success: true, Message: "Privacy Policy saved successfully"}, nil
}

func strptr(s string) *string { return &s }

func newLegalFixture(gw *fakeLegalGateway) (*Legal, *recordingNotifier) {
	n := &recordingNotifier{}
	l := &Legal{
		Session:  &fakeSessions{token: "tok"},
		Gateway:  gw,
		Notifier: n,
	}
	return l, n
}

func TestLegalRefreshWithoutToken(t *testing.T) {
	gw := &fakeLegalGateway{}
	l, _ := newLegalFixture(gw)
	l.Session = &fakeSessions{}

	l.Refresh(testCtx)
	if gw.gets != 0 {
		t.Fatal("no gateway call expected without a token")
	}
	if got := l.Snapshot().Error; got != "Authentication token missing." {
		t.Fatalf("expected missing-token error, got %q", got)
	}
}

func TestLegalRefreshAlwaysFetches(t *testing.T) {
	gw := &fakeLegalGateway{docs: model.LegalDocuments{
		PrivacyPolicy:   strptr("# Privacy"),
		TermsConditions: strptr("# Terms"),
	}}
	l, _ := newLegalFixture(gw)

	l.Refresh(testCtx)
	l.Refresh(testCtx)
	// No caching: every refresh hits the gateway.
	if gw.gets != 2 {
		t.Fatalf("expected 2 fetches, got %d", gw.gets)
	}
	snap := l.Snapshot()
	if snap.PrivacyPolicy != "# Privacy" || snap.TermsConditions != "# Terms" {
		t.Fatalf("documents not applied: %+v", snap)
	}
	if snap.Loading || snap.Error != "" {
		t.Fatalf("unexpected flags: %+v", snap)
	}
}

func TestLegalRefreshNilDocumentsReadAsEmpty(t *testing.T) {
	gw := &fakeLegalGateway{} // both fields nil
	l, _ := newLegalFixture(gw)

	l.Refresh(testCtx)
	snap := l.Snapshot()
	if snap.PrivacyPolicy != "" || snap.TermsConditions != "" {
		t.Fatalf("nil documents must read as empty, got %+v", snap)
	}
}

func TestLegalRefreshFailure(t *testing.T) {
	gw := &fakeLegalGateway{getErr: errors.New("boom")}
	l, n := newLegalFixture(gw)

	l.Refresh(testCtx)
	if got := l.Snapshot().Error; got != "boom" {
		t.Fatalf("expected absorbed error, got %q", got)
	}
	if len(n.errors) != 1 {
		t.Fatalf("expected one error notice, got %v", n.errors)
	}
}

func TestLegalSavePartialThenReconciles(t *testing.T) {
	gw := &fakeLegalGateway{docs: model.LegalDocuments{
		PrivacyPolicy:   strptr("old privacy"),
		TermsConditions: strptr("old terms"),
	}}
	l, n := newLegalFixture(gw)
	l.Refresh(testCtx)

	err := l.Save(testCtx, model.LegalDocuments{PrivacyPolicy: strptr("new privacy")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(gw.saved))
	}
	if gw.saved[0].TermsConditions != nil {
		t.Fatal("partial save must not send the untouched document")
	}
	// Save refetches to reconcile the partial update.
	if gw.gets != 2 {
		t.Fatalf("expected a refetch after save, got %d gets", gw.gets)
	}
	snap := l.Snapshot()
	if snap.PrivacyPolicy != "new privacy" || snap.TermsConditions != "old terms" {
		t.Fatalf("reconciled state wrong: %+v", snap)
	}
	if snap.Saving {
		t.Fatal("saving flag must clear")
	}
	if len(n.infos) != 1 || n.infos[0] != "Privacy Policy saved successfully" {
		t.Fatalf("expected server message surfaced, got %v", n.infos)
	}
}

func TestLegalSaveFailureKeepsState(t *testing.T) {
	gw := &fakeLegalGateway{
		docs:    model.LegalDocuments{PrivacyPolicy: strptr("current")},
		saveErr: &api.Error{Kind: api.KindValidation, Status: 400, Message: "document too large"},
	}
	l, n := newLegalFixture(gw)
	l.Refresh(testCtx)

	err := l.Save(testCtx, model.LegalDocuments{PrivacyPolicy: strptr("huge")})
	if err == nil {
		t.Fatal("expected error returned so the editor can stay open")
	}
	snap := l.Snapshot()
	if snap.PrivacyPolicy != "current" {
		t.Fatalf("failed save must not change the document, got %q", snap.PrivacyPolicy)
	}
	if snap.Error != "document too large" {
		t.Fatalf("expected error recorded, got %q", snap.Error)
	}
	// No reconciliation fetch on failure.
	if gw.gets != 1 {
		t.Fatalf("expected no refetch after failed save, got %d gets", gw.gets)
	}
	if len(n.errors) != 1 {
		t.Fatalf("expected one error notice, got %v", n.errors)
	}
}

func TestLegalSaveWithoutToken(t *testing.T) {
	gw := &fakeLegalGateway{}
	l, n := newLegalFixture(gw)
	l.Session = &fakeSessions{}

	err := l.Save(testCtx, model.LegalDocuments{PrivacyPolicy: strptr("x")})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gw.saved) != 0 {
		t.Fatal("no gateway call expected without a token")
	}
	if len(n.errors) != 1 || n.errors[0] != sessionExpiredMessage {
		t.Fatalf("expected session-expired notice, got %v", n.errors)
	}
}
