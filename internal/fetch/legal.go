package fetch

import (
	"context"
	"sync"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
)

// LegalGateway is the legal-documents slice of the remote API.
type LegalGateway interface {
	GetLegalDocuments(ctx context.Context) (model.LegalDocuments, error)
	SaveLegalDocuments(ctx context.Context, docs model.LegalDocuments) (api.LegalResult, error)
}

// LegalState is the singleton document pair plus its load/save flags. It
// lives outside the collection store: there is exactly one instance, no
// pagination, and no caching (every mount refetches).
type LegalState struct {
	PrivacyPolicy   string
	TermsConditions string
	Loading         bool
	Saving          bool
	Error           string
}

// Legal coordinates the legal-documents editor.
type Legal struct {
	Session  Sessions
	Gateway  LegalGateway
	Notifier Notifier

	mu    sync.RWMutex
	state LegalState
}

// Snapshot returns the current editor state.
func (l *Legal) Snapshot() LegalState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Legal) update(fn func(*LegalState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.state)
}

// Refresh always fetches — the documents are never considered fresh.
// Failures are absorbed into the snapshot error.
func (l *Legal) Refresh(ctx context.Context) {
	if l.Session.Token() == "" {
		l.update(func(s *LegalState) {
			s.Error = "Authentication token missing."
			s.Loading = false
		})
		return
	}

	l.update(func(s *LegalState) {
		s.Loading = true
		s.Error = ""
	})
	docs, err := l.Gateway.GetLegalDocuments(ctx)
	if err != nil {
		l.update(func(s *LegalState) {
			s.Loading = false
			s.Error = err.Error()
		})
		notifyFailure(l.Notifier, err)
		return
	}
	l.update(func(s *LegalState) {
		s.Loading = false
		s.PrivacyPolicy = deref(docs.PrivacyPolicy)
		s.TermsConditions = deref(docs.TermsConditions)
	})
}

// Save pushes a partial update, then refetches to reconcile: a save may
// touch only one document while the other must keep its last-known server
// value. The error is returned so the editor can stay open on failure.
func (l *Legal) Save(ctx context.Context, docs model.LegalDocuments) error {
	if l.Session.Token() == "" {
		l.update(func(s *LegalState) { s.Error = "Authentication token missing." })
		if l.Notifier != nil {
			l.Notifier.NotifyError(sessionExpiredMessage)
		}
		return &api.Error{Kind: api.KindUnauthorized, Message: "Authentication token missing."}
	}

	l.update(func(s *LegalState) {
		s.Saving = true
		s.Error = ""
	})
	res, err := l.Gateway.SaveLegalDocuments(ctx, docs)
	if err != nil {
		l.update(func(s *LegalState) {
			s.Saving = false
			s.Error = err.Error()
		})
		notifyFailure(l.Notifier, err)
		return err
	}
	if l.Notifier != nil {
		if res.Message != "" {
			l.Notifier.Notify(res.Message)
		} else {
			l.Notifier.Notify("Legal document saved")
		}
	}
	l.Refresh(ctx)
	l.update(func(s *LegalState) { s.Saving = false })
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
