package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["cache"] != CheckOK {
		t.Errorf("expected cache %q, got %q", CheckOK, r.Checks["cache"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["cache"] != CheckOK {
		t.Errorf("expected cache %q, got %q", CheckOK, r.Checks["cache"])
	}
}

func TestCheck_CacheError(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["cache"] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks["cache"])
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(
		&mockPinger{err: errors.New("db down")},
		&mockPinger{err: errors.New("cache down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Error("expected database error")
	}
	if r.Checks["cache"] != CheckError {
		t.Error("expected cache error")
	}
}

func TestCheck_NoCache(t *testing.T) {
	svc := New(&mockPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}
