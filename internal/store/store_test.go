package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"skillora/internal/market"
)

// runStoreContract exercises the behavior every market.Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) market.Store) {
	ctx := context.Background()

	t.Run("get missing key returns nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() = %q, want nil", got)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, "skillora_db_jobs", []byte(`[{"id":"job_1"}]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "skillora_db_jobs")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `[{"id":"job_1"}]` {
			t.Errorf("Get() = %q, want %q", got, `[{"id":"job_1"}]`)
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, "k", []byte("first")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put(ctx, "k", []byte("second")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get() = %q, want %q", got, "second")
		}
	})

	t.Run("delete removes key and tolerates absence", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, "k", []byte("v")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := s.Delete(ctx, "k"); err != nil {
			t.Fatalf("second Delete() error = %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() after Delete = %q, want nil", got)
		}
	})

	t.Run("keys are sorted", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"skillora_db_user", "skillora_db_jobs", "skillora_db_contracts", "a-b", "a"} {
			if err := s.Put(ctx, k, []byte("{}")); err != nil {
				t.Fatalf("Put(%s) error = %v", k, err)
			}
		}
		got, err := s.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"a", "a-b", "skillora_db_contracts", "skillora_db_jobs", "skillora_db_user"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("clear removes everything", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"a", "b"} {
			if err := s.Put(ctx, k, []byte("x")); err != nil {
				t.Fatalf("Put(%s) error = %v", k, err)
			}
		}
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		keys, err := s.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("Keys() after Clear = %v, want empty", keys)
		}
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) market.Store {
		return NewMemoryStore()
	})
}

func TestFileSystemStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) market.Store {
		s, err := NewFileSystemStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		return s
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) market.Store {
		s, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStore() error = %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestS3Store_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) market.Store {
		return NewS3StoreWithClient(newFakeS3(), "bucket", "tab-1")
	})
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value := []byte("original")
	if err := s.Put(ctx, "k", value); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	value[0] = 'X'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "original" {
		t.Errorf("Get() = %q, caller mutation leaked into store", got)
	}

	got[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("Get() = %q, returned slice aliases stored value", again)
	}
}

func TestFileSystemStore_RejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileSystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}

	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := s.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Put(%q) expected error", key)
		}
	}
}

func TestFileSystemStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	first, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}
	if err := first.Put(ctx, "skillora_db_user", []byte(`{"id":"u"}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	second, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}
	got, err := second.Get(ctx, "skillora_db_user")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"id":"u"}` {
		t.Errorf("Get() = %q, want %q", got, `{"id":"u"}`)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "skillora.db")

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := first.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen NewSQLiteStore() error = %v", err)
	}
	defer second.Close()

	got, err := second.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestSQLiteStore_BackupTo(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewSQLiteStore(filepath.Join(dir, "skillora.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()
	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	backup := filepath.Join(dir, "backup.db")
	if err := s.BackupTo(ctx, backup); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	restored, err := NewSQLiteStore(backup)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer restored.Close()

	got, err := restored.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("backup Get() = %q, want %q", got, "v")
	}
}
