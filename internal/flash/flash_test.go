package flash

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

func TestMemoryStore_PushPop(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Push(ctx, "s1", Success("Task created")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := store.Push(ctx, "s1", Error("Category in use")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := store.Push(ctx, "s2", Success("other session")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	got, err := store.Pop(ctx, "s1")
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if len(got) != 2 || got[0].Kind != KindSuccess || got[1].Kind != KindError {
		t.Fatalf("unexpected messages %+v", got)
	}

	again, _ := store.Pop(ctx, "s1")
	if len(again) != 0 {
		t.Errorf("expected messages to be cleared, got %+v", again)
	}

	other, _ := store.Pop(ctx, "s2")
	if len(other) != 1 || other[0].Text != "other session" {
		t.Errorf("sessions must be isolated, got %+v", other)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Second)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	if err := store.Push(ctx, "s1", Success("stale")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	now = now.Add(2 * time.Second)
	got, err := store.Pop(ctx, "s1")
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected expired messages to be dropped, got %+v", got)
	}
}

func TestMemoryStore_EmptySession(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	if err := store.Push(context.Background(), "", Success("x")); !errors.Is(err, ErrEmptySession) {
		t.Errorf("expected ErrEmptySession, got %v", err)
	}
}

func TestMemoryStore_ConcurrentPush(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	const count = 50
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_ = store.Push(ctx, "shared", Success("hi"))
		}()
	}
	wg.Wait()

	got, _ := store.Pop(ctx, "shared")
	if len(got) != count {
		t.Errorf("expected %d messages, got %d", count, len(got))
	}
}

// Runs only when a Redis server is reachable at FLASH_TEST_REDIS_ADDR.
func TestRedisStore_PushPop(t *testing.T) {
	addr := os.Getenv("FLASH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FLASH_TEST_REDIS_ADDR not set")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		t.Fatalf("failed to connect redis: %v", err)
	}
	defer client.Close()

	store := NewRedisStore(client, "task_manager_test:flash:", time.Minute)
	ctx := context.Background()
	session := uuid.NewString()

	if err := store.Push(ctx, session, Success("one")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := store.Push(ctx, session, Error("two")); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	got, err := store.Pop(ctx, session)
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if len(got) != 2 || got[0].Text != "one" || got[1].Text != "two" {
		t.Fatalf("unexpected messages %+v", got)
	}

	empty, err := store.Pop(ctx, session)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty pop, got %+v (%v)", empty, err)
	}
}
