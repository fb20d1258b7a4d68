package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put("job-1", []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get("job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, []byte(`{"ok":true}`)) {
		t.Errorf("Get() = %s", got)
	}

	if err := s.Delete("job-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get("job-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("job-1"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestMemoryStore_PutCopiesValue(t *testing.T) {
	s := NewMemoryStore()

	value := []byte("original")
	if err := s.Put("k", value); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	value[0] = 'X'

	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated: %s", got)
	}
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put("k", []byte("one")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put("k", []byte("two")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get() = %s, want two", got)
	}
}
