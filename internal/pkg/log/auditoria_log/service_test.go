package auditoria_log

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepository struct {
	saved    []AuditLog
	saveErr  error
	entries  map[uuid.UUID]AuditLog
	lastList ListFilter
}

func (f *fakeRepository) Save(ctx context.Context, entry *AuditLog) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *entry)
	return nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope Scope) (AuditLog, error) {
	entry, ok := f.entries[id]
	if !ok {
		return AuditLog{}, ErrNotFound
	}
	return entry, nil
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, scope Scope) ([]AuditLog, int64, error) {
	f.lastList = filter
	out := make([]AuditLog, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func TestServiceLog(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Log(ctx, AuditLog{Action: "create"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing module: err = %v, want ErrInvalidInput", err)
	}
	if err := svc.Log(ctx, AuditLog{Module: "cases"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing action: err = %v, want ErrInvalidInput", err)
	}

	if err := svc.Log(ctx, AuditLog{Module: "cases", Action: "update"}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d entries, want 1", len(repo.saved))
	}
	if repo.saved[0].Function != "update" {
		t.Errorf("Function = %q, want action as default", repo.saved[0].Function)
	}
}

func TestServiceRead(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{entries: map[uuid.UUID]AuditLog{id: {UUID: id, Module: "todos"}}}
	svc := NewService(repo)

	if _, err := svc.Read(context.Background(), uuid.Nil, Scope{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil uuid: err = %v", err)
	}
	if _, err := svc.Read(context.Background(), uuid.New(), Scope{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown uuid: err = %v", err)
	}
	got, err := svc.Read(context.Background(), id, Scope{})
	if err != nil || got.Module != "todos" {
		t.Errorf("Read() = %+v, %v", got, err)
	}
}

func TestServiceListRejectsInvertedRange(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	if _, _, err := svc.List(context.Background(), ListFilter{From: &from, To: &to}, Scope{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	to = from.Add(time.Hour)
	if _, _, err := svc.List(context.Background(), ListFilter{From: &from, To: &to, Module: "cases"}, Scope{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastList.Module != "cases" {
		t.Errorf("filter not forwarded: %+v", repo.lastList)
	}
}
