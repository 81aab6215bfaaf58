package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubService returns canned values so the typed wrapper's handling of each
// shape can be exercised without a real cache behind it.
type stubService struct {
	result any
	err    error
}

func (s *stubService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	return s.result, s.err
}

func (s *stubService) Delete(ctx context.Context, key string) error            { return nil }
func (s *stubService) DeleteByPrefix(ctx context.Context, prefix string) error { return nil }

type payload struct {
	Name string
}

func TestGetOrFetch_TypedResult(t *testing.T) {
	svc := &stubService{result: &payload{Name: "an"}}

	got, err := GetOrFetch(context.Background(), svc, "k", func(ctx context.Context) (*payload, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != "an" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestGetOrFetch_PropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	svc := &stubService{err: wantErr}

	got, err := GetOrFetch(context.Background(), svc, "k", func(ctx context.Context) (*payload, error) {
		return nil, nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected zero value on error, got %+v", got)
	}
}

func TestGetOrFetch_NilResult(t *testing.T) {
	svc := &stubService{result: nil}

	got, err := GetOrFetch(context.Background(), svc, "k", func(ctx context.Context) (*payload, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result, got %+v", got)
	}
}

func TestGetOrFetch_TypeMismatch(t *testing.T) {
	svc := &stubService{result: "not a payload"}

	_, err := GetOrFetch(context.Background(), svc, "k", func(ctx context.Context) (*payload, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatal("expected a type mismatch error")
	}
	if !strings.Contains(err.Error(), "unexpected value type") {
		t.Errorf("unexpected error message: %v", err)
	}
}
