package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "folio.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetAbsent(t *testing.T) {
	s := openTestStore(t)

	value, version, err := s.Get(context.Background(), "portfolio_data")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != nil || version != 0 {
		t.Errorf("Get(absent) = %q, %d; want nil, 0", value, version)
	}
}

func TestPutAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v1, err := s.Put(ctx, "k", []byte("one"), 0)
	if err != nil || v1 != 1 {
		t.Fatalf("first Put = %d, %v", v1, err)
	}

	v2, err := s.Put(ctx, "k", []byte("two"), v1)
	if err != nil || v2 != 2 {
		t.Fatalf("second Put = %d, %v", v2, err)
	}

	value, version, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "two" || version != 2 {
		t.Errorf("Get = %q@%d, want two@2", value, version)
	}
}

func TestPutVersionConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, "k", []byte("one"), 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	tests := []struct {
		name     string
		expected int64
	}{
		{name: "insert over existing", expected: 0},
		{name: "stale version", expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Put(ctx, "k", []byte("x"), tt.expected)
			if !errors.Is(err, ErrVersionConflict) {
				t.Errorf("Put(expected=%d) error = %v, want ErrVersionConflict", tt.expected, err)
			}
		})
	}

	value, _, _ := s.Get(ctx, "k")
	if string(value) != "one" {
		t.Errorf("conflicting writes changed the value to %q", value)
	}
}
