package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing key: err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "transactions", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "transactions")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("Get = %s", got)
	}

	// Overwrite replaces wholesale.
	if err := kv.Set(ctx, "transactions", []byte(`[]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "transactions")
	if string(got) != `[]` {
		t.Fatalf("after overwrite Get = %s", got)
	}

	if err := kv.Remove(ctx, "transactions"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := kv.Get(ctx, "transactions"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Remove: err = %v, want ErrNotFound", err)
	}

	// Removing an absent key is not an error.
	if err := kv.Remove(ctx, "transactions"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	value := []byte(`[1,2,3]`)
	_ = kv.Set(ctx, "k", value)
	value[0] = 'X'

	got, _ := kv.Get(ctx, "k")
	if string(got) != `[1,2,3]` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
}
