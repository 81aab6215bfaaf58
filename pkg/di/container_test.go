package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-student-records/internal/cacheinfra"
	"github.com/goliatone/go-student-records/student"
)

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}

	if container.CacheService() == nil {
		t.Error("expected a cache service")
	}
	if container.KeySerializer() == nil {
		t.Error("expected a key serializer")
	}
	if container.Config().TTL != 5*time.Minute {
		t.Errorf("expected default 5 minute TTL, got %v", container.Config().TTL)
	}
}

func TestNewContainer_RejectsInvalidConfig(t *testing.T) {
	cfg := cacheinfra.DefaultConfig()
	cfg.Capacity = 0

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected construction to fail on invalid config")
	}
}

func TestContainer_SharesSingletons(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}

	if container.CacheService() != container.CacheService() {
		t.Error("expected the same cache service instance on every call")
	}
	if container.KeySerializer() != container.KeySerializer() {
		t.Error("expected the same key serializer instance on every call")
	}
}

func TestContainer_NewCachedStore(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("failed to build container: %v", err)
	}

	ctx := context.Background()
	base := student.NewMemStore()
	cached := container.NewCachedStore(base)

	math := 8.0
	rec, err := cached.Create(ctx, student.CreateInput{
		RecordCode: "STU001",
		FirstName:  "An",
		LastName:   "Nguyen",
		MathScore:  &math,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := cached.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.RecordCode != "STU001" {
		t.Errorf("unexpected record: %+v", got)
	}

	// Two cached stores built from one container share the cache, so a
	// write through one invalidates reads through the other.
	other := container.NewCachedStore(base)
	if _, err := other.List(ctx, student.ListParams{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := cached.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	res, err := other.List(ctx, student.ListParams{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("expected empty store after delete, got total=%d", res.Total)
	}
}
