package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(8)
	ctx := context.Background()

	if err := m.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q", got)
	}
}

func TestMemory_Miss(t *testing.T) {
	m := NewMemory(8)
	if _, err := m.Get(context.Background(), "absent"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(8)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	if err := m.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err = %v, want ErrKeyNotFound after expiry", err)
	}
}

func TestMemory_CapacityEviction(t *testing.T) {
	m := NewMemory(2)
	ctx := context.Background()

	m.SetWithTTL(ctx, "a", []byte("1"), time.Minute)
	m.SetWithTTL(ctx, "b", []byte("2"), time.Minute)
	m.SetWithTTL(ctx, "c", []byte("3"), time.Minute)

	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrKeyNotFound) {
		t.Error("oldest entry survived eviction")
	}
	if _, err := m.Get(ctx, "c"); err != nil {
		t.Error("newest entry missing")
	}
}

func TestMemory_OverwriteKeepsSingleSlot(t *testing.T) {
	m := NewMemory(2)
	ctx := context.Background()

	m.SetWithTTL(ctx, "a", []byte("1"), time.Minute)
	m.SetWithTTL(ctx, "a", []byte("2"), time.Minute)
	m.SetWithTTL(ctx, "b", []byte("3"), time.Minute)

	got, err := m.Get(ctx, "a")
	if err != nil {
		t.Fatalf("overwritten key evicted: %v", err)
	}
	if string(got) != "2" {
		t.Errorf("got %q, want the overwritten value", got)
	}
}
