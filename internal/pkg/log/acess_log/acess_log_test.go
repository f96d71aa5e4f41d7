package acess_log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepository struct {
	saved  []AccessLog
	cutoff time.Time
}

func (f *fakeRepository) Save(ctx context.Context, entry AccessLog) error {
	f.saved = append(f.saved, entry)
	return nil
}

func (f *fakeRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 7, nil
}

func TestServiceRejectsInvalidEntries(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	cases := []struct {
		name  string
		entry AccessLog
		ok    bool
	}{
		{"valid", AccessLog{Method: "GET", Path: "/health", IP: "10.0.0.1"}, true},
		{"ipv6", AccessLog{Method: "GET", Path: "/health", IP: "::1"}, true},
		{"no method", AccessLog{Path: "/health", IP: "10.0.0.1"}, false},
		{"bad ip", AccessLog{Method: "GET", Path: "/health", IP: "unknown"}, false},
	}
	for _, tc := range cases {
		err := svc.Log(context.Background(), tc.entry)
		if tc.ok && err != nil {
			t.Errorf("%s: %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
	if len(repo.saved) != 2 {
		t.Errorf("saved %d entries", len(repo.saved))
	}
}

func TestLevelFollowsStatus(t *testing.T) {
	cases := map[int]slog.Level{200: slog.LevelInfo, 404: slog.LevelWarn, 503: slog.LevelError}
	for status, want := range cases {
		if got := (AccessLog{StatusCode: status}).Level(); got != want {
			t.Errorf("status %d: got %v", status, got)
		}
	}
}

func TestEmitWritesSlogLine(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	user := uuid.New()
	Emit(context.Background(), AccessLog{
		UserUUID:     &user,
		RayTraceCode: "trace-1",
		Method:       "POST",
		Path:         "/api/cases",
		StatusCode:   201,
		IP:           "127.0.0.1",
		RequestTime:  time.Now(),
		LatencyMs:    1.5,
	})

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line["component"] != "ACCESS" || line["trace_id"] != "trace-1" || line["status"] != float64(201) {
		t.Errorf("line = %v", line)
	}
	if line["user_uuid"] != user.String() {
		t.Errorf("user_uuid = %v", line["user_uuid"])
	}
}

func TestPurgeUsesRetention(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	n, err := svc.Purge(context.Background(), 30*24*time.Hour)
	if err != nil || n != 7 {
		t.Fatalf("Purge = %d, %v", n, err)
	}
	if !repo.cutoff.Equal(fixed.AddDate(0, 0, -30)) {
		t.Errorf("cutoff = %v", repo.cutoff)
	}

	repo.cutoff = time.Time{}
	if n, _ := svc.Purge(context.Background(), 0); n != 0 || !repo.cutoff.IsZero() {
		t.Error("zero retention must not delete")
	}
}
