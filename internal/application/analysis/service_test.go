package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type mockAI struct {
	reply string
	err   error
	calls int
}

func (m *mockAI) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls++
	return m.reply, m.err
}

type mockRepo struct {
	createErr   error
	completeErr error
	created     []*domain.Analysis
	completed   []domain.AnalysisID
	sections    domain.Sections
	nextID      domain.AnalysisID
}

func (m *mockRepo) CreateProcessing(ctx context.Context, a *domain.Analysis) (domain.AnalysisID, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = append(m.created, a)
	return m.nextID, nil
}

func (m *mockRepo) Complete(ctx context.Context, id domain.AnalysisID, s domain.Sections, at time.Time) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.completed = append(m.completed, id)
	m.sections = s
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return nil, domain.ErrNotFound
}

func (m *mockRepo) Latest(ctx context.Context, nicho string, limit int) ([]*domain.Analysis, error) {
	return nil, nil
}

func (m *mockRepo) Niches(ctx context.Context) ([]string, error) { return nil, nil }

type mockArchive struct {
	keys []string
	data [][]byte
	err  error
}

func (m *mockArchive) Put(ctx context.Context, key string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	m.data = append(m.data, data)
	return "http://archive/" + key, nil
}

func newService(ai *mockAI, repo *mockRepo, archive *mockArchive) *Service {
	s := &Service{Clock: fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}}
	if ai != nil {
		s.AI = ai
	}
	if repo != nil {
		s.Repo = repo
	}
	if archive != nil {
		s.Archive = archive
	}
	return s
}

func TestRun_ModelFailureFallsBack(t *testing.T) {
	ai := &mockAI{err: errors.New("timeout")}
	repo := &mockRepo{nextID: 42}
	svc := newService(ai, repo, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if !res.Fallback {
		t.Error("expected fallback result")
	}
	if res.Payload["avatar"] == nil {
		t.Error("fallback payload missing avatar")
	}
	if len(repo.completed) != 1 || repo.completed[0] != 42 {
		t.Errorf("record not completed: %v", repo.completed)
	}
	if got, ok := res.Payload["analysis_id"].(int64); !ok || got != 42 {
		t.Errorf("analysis_id = %v, want 42", res.Payload["analysis_id"])
	}
}

func TestRun_ModelSuccessWithFencedJSON(t *testing.T) {
	ai := &mockAI{reply: "Segue:\n```json\n{\"avatar\": {\"nome\": \"Ana\"}, \"metrics\": {\"roi\": 50}}\n```"}
	repo := &mockRepo{nextID: 7}
	svc := newService(ai, repo, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if res.Fallback {
		t.Fatal("expected model result, got fallback")
	}
	avatar, ok := res.Payload["avatar"].(map[string]any)
	if !ok || avatar["nome"] != "Ana" {
		t.Errorf("payload avatar = %v", res.Payload["avatar"])
	}
	if len(repo.sections.Comprehensive) == 0 {
		t.Error("comprehensive blob not persisted")
	}
}

func TestRun_UnparsableReplyFallsBack(t *testing.T) {
	ai := &mockAI{reply: "I cannot produce an analysis right now."}
	svc := newService(ai, nil, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if !res.Fallback {
		t.Error("expected fallback for reply without JSON")
	}
}

func TestRun_ReplyMissingSchemaKeysFallsBack(t *testing.T) {
	ai := &mockAI{reply: `{"unrelated": true}`}
	svc := newService(ai, nil, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if !res.Fallback {
		t.Error("expected fallback for JSON without schema keys")
	}
}

func TestRun_NilDependencies(t *testing.T) {
	svc := newService(nil, nil, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if !res.Fallback {
		t.Error("expected fallback when model client is absent")
	}
	if res.AnalysisID != nil {
		t.Error("no analysis id expected without a repository")
	}
}

func TestRun_CreateErrorSwallowed(t *testing.T) {
	ai := &mockAI{err: errors.New("boom")}
	repo := &mockRepo{createErr: errors.New("store down")}
	svc := newService(ai, repo, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if res.AnalysisID != nil {
		t.Error("analysis id should be absent when create failed")
	}
	if _, ok := res.Payload["analysis_id"]; ok {
		t.Error("analysis_id should not be injected when create failed")
	}
	if res.Payload["avatar"] == nil {
		t.Error("request must still succeed with a full payload")
	}
}

func TestRun_CompleteErrorSwallowed(t *testing.T) {
	ai := &mockAI{err: errors.New("boom")}
	repo := &mockRepo{nextID: 5, completeErr: errors.New("store down")}
	svc := newService(ai, repo, nil)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if _, ok := res.Payload["analysis_id"]; ok {
		t.Error("analysis_id should not be injected when complete failed")
	}
	if res.Payload["metrics"] == nil {
		t.Error("payload incomplete after swallowed store error")
	}
}

func TestRun_ArchivesRawReply(t *testing.T) {
	ai := &mockAI{reply: `{"avatar": {}, "metrics": {}}`}
	archive := &mockArchive{}
	svc := newService(ai, nil, archive)

	svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})

	if len(archive.keys) != 1 {
		t.Fatalf("archive called %d times, want 1", len(archive.keys))
	}
	if string(archive.data[0]) != ai.reply {
		t.Errorf("archived %q, want the raw reply", archive.data[0])
	}
}

func TestRun_ArchiveErrorSwallowed(t *testing.T) {
	ai := &mockAI{err: errors.New("boom")}
	archive := &mockArchive{err: errors.New("bucket gone")}
	svc := newService(ai, nil, archive)

	res := svc.Run(context.Background(), domain.Brief{Nicho: "yoga"})
	if res.Payload == nil {
		t.Error("payload must survive archive failure")
	}
}
