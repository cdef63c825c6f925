package journal

import (
	"context"
	"testing"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/core/numerator"
	"quipu/internal/core/tx"
	"quipu/internal/core/types"
)

// fakeRepo is an in-memory journal Repository.
type fakeRepo struct {
	entries map[id.ID]*Entry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[id.ID]*Entry)}
}

func (r *fakeRepo) Create(_ context.Context, e *Entry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, entryID id.ID) (*Entry, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("journal entry", entryID.String())
	}
	return e, nil
}

func (r *fakeRepo) GetByNumber(_ context.Context, number string) (*Entry, error) {
	for _, e := range r.entries {
		if e.Number == number {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("journal entry", number)
}

func (r *fakeRepo) UpdateStatus(_ context.Context, e *Entry) error {
	stored, ok := r.entries[e.ID]
	if !ok {
		return apperror.NewNotFound("journal entry", e.ID.String())
	}
	stored.Status = e.Status
	stored.PostedAt = e.PostedAt
	stored.VoidedAt = e.VoidedAt
	stored.Version++
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Entry, error) {
	var out []*Entry
	for _, e := range r.entries {
		if matches(e, filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	list, _ := r.List(ctx, filter)
	return int64(len(list)), nil
}

func matches(e *Entry, f Filter) bool {
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if e.Status == st {
			return true
		}
	}
	return false
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, &numerator.MockGenerator{}, tx.NewMockManager()), repo
}

func TestCreateDraftAssignsNumber(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e := NewEntry(testDate(), "Asiento manual", "", balancedLines())
	if err := svc.CreateDraft(ctx, e); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if e.Number == "" {
		t.Error("number not assigned")
	}
	if _, ok := repo.entries[e.ID]; !ok {
		t.Error("entry not stored")
	}
	if e.Status != StatusDraft {
		t.Errorf("status = %s, want draft", e.Status)
	}
}

func TestPostRejectsUnbalancedDraft(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e := NewEntry(testDate(), "Asiento descuadrado", "", []Line{
		{AccountCode: "1141", Debit: types.MustMoney("1000")},
		{AccountCode: "2111", Credit: types.MustMoney("900")},
	})
	if err := svc.CreateDraft(ctx, e); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	_, err := svc.Post(ctx, e.ID)
	if !apperror.IsCode(err, apperror.CodeUnbalancedEntry) {
		t.Fatalf("err = %v, want UNBALANCED_ENTRY", err)
	}
	if repo.entries[e.ID].Status != StatusDraft {
		t.Error("status changed after rejected post")
	}
}

func TestPostDirectNeverStoresUnbalanced(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e := NewEntry(testDate(), "Asiento descuadrado", "", []Line{
		{AccountCode: "1141", Debit: types.MustMoney("1000")},
		{AccountCode: "2111", Credit: types.MustMoney("900")},
	})
	err := svc.PostDirect(ctx, e)
	if !apperror.IsCode(err, apperror.CodeUnbalancedEntry) {
		t.Fatalf("err = %v, want UNBALANCED_ENTRY", err)
	}
	if len(repo.entries) != 0 {
		t.Error("unbalanced entry reached the store")
	}
}

func TestPostDirectStoresPosted(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	e := NewEntry(testDate(), "Compra", "CMP-2026-00001", balancedLines())
	if err := svc.PostDirect(ctx, e); err != nil {
		t.Fatalf("post direct: %v", err)
	}

	stored := repo.entries[e.ID]
	if stored.Status != StatusPosted {
		t.Errorf("status = %s, want posted", stored.Status)
	}
	if stored.Number == "" {
		t.Error("number not assigned")
	}
}

func TestVoidLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	e := NewEntry(testDate(), "Compra", "", balancedLines())
	if err := svc.PostDirect(ctx, e); err != nil {
		t.Fatalf("post direct: %v", err)
	}

	voided, err := svc.Void(ctx, e.ID)
	if err != nil {
		t.Fatalf("void: %v", err)
	}
	if voided.Status != StatusVoided {
		t.Errorf("status = %s, want voided", voided.Status)
	}

	_, err = svc.Void(ctx, e.ID)
	if !apperror.IsCode(err, apperror.CodeEntryVoided) {
		t.Errorf("double void err = %v, want ENTRY_VOIDED", err)
	}

	_, err = svc.Void(ctx, id.New())
	if !apperror.IsNotFound(err) {
		t.Errorf("void missing err = %v, want NOT_FOUND", err)
	}
}
