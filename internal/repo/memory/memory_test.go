package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tournotify/internal/domain"
)

func TestStore_RecentNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_ = s.Append(ctx, domain.NotFound(now, fmt.Sprintf("msg-%d", i)))
	}

	rows, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0].Message != "msg-2" || rows[1].Message != "msg-1" {
		t.Fatalf("want newest first, got %+v", rows)
	}
}

func TestStore_BoundedCap(t *testing.T) {
	s := NewWithCap(5)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 20; i++ {
		_ = s.Append(ctx, domain.NotFound(now, fmt.Sprintf("msg-%d", i)))
	}
	rows, _ := s.Recent(ctx, 0)
	if len(rows) != 5 {
		t.Fatalf("want cap of 5, got %d", len(rows))
	}
	if rows[0].Message != "msg-19" {
		t.Fatalf("want newest retained, got %q", rows[0].Message)
	}
}
