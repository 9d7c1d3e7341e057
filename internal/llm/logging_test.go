package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/langbuddy/internal/store"
)

type recordingEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "Guten Tag!", Usage: Usage{InputTokens: 7, OutputTokens: 3}})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeChat)
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "Hallo"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != PurposeChat || !e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 7 || e.OutputTokens != 3 {
		t.Fatalf("unexpected tokens: %d/%d", e.InputTokens, e.OutputTokens)
	}
	if e.ResponseBody != "Guten Tag!" {
		t.Fatalf("unexpected response body: %q", e.ResponseBody)
	}
	if !strings.Contains(e.RequestBody, "[system]\nsys") || !strings.Contains(e.RequestBody, "[user]\nHallo") {
		t.Fatalf("unexpected request body: %q", e.RequestBody)
	}
}

func TestLogging_RecordsFailureAndIgnoresRepoErrors(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got %T", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if repo.events[0].ErrorMessage == "" {
		t.Fatal("expected error message recorded")
	}
}

func TestLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
