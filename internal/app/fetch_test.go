package app

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBestEffort_AllSucceed(t *testing.T) {
	var a, b int
	failed, err := BestEffort(context.Background(),
		Fetch{Name: "a", Run: func(context.Context) error { a = 1; return nil }},
		Fetch{Name: "b", Run: func(context.Context) error { b = 2; return nil }},
	)
	if err != nil {
		t.Fatalf("BestEffort returned error: %v", err)
	}
	if failed != nil {
		t.Fatalf("failed = %v, want nil", failed)
	}
	if a != 1 || b != 2 {
		t.Fatalf("results = %d,%d, want 1,2", a, b)
	}
}

func TestBestEffort_PartialFailureNamesResource(t *testing.T) {
	var got []string
	failed, err := BestEffort(context.Background(),
		Fetch{Name: "titles", Run: func(context.Context) error { got = []string{"t1"}; return nil }},
		Fetch{Name: "inventories", Run: func(context.Context) error { return errors.New("boom") }},
	)
	if err != nil {
		t.Fatalf("BestEffort returned error on partial failure: %v", err)
	}
	if len(failed) != 1 || failed[0] != "inventories" {
		t.Fatalf("failed = %v, want [inventories]", failed)
	}
	if len(got) != 1 {
		t.Fatalf("successful fetch result lost: %v", got)
	}
}

func TestBestEffort_TotalFailureErrors(t *testing.T) {
	failed, err := BestEffort(context.Background(),
		Fetch{Name: "a", Run: func(context.Context) error { return errors.New("down") }},
		Fetch{Name: "b", Run: func(context.Context) error { return errors.New("down too") }},
	)
	if err == nil {
		t.Fatalf("BestEffort returned nil error, want total failure")
	}
	if !strings.Contains(err.Error(), "all fetches failed") {
		t.Fatalf("error = %v, want all fetches failed", err)
	}
	if len(failed) != 2 {
		t.Fatalf("failed = %v, want both names", failed)
	}
}

func TestBestEffort_NoFetches(t *testing.T) {
	failed, err := BestEffort(context.Background())
	if err != nil || failed != nil {
		t.Fatalf("BestEffort() = %v, %v, want nil, nil", failed, err)
	}
}
