package registry

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/buildprops/pkg/errors"
)

// generator is a simple type for testing
type generator func() string

func constant(s string) generator {
	return func() string { return s }
}

func TestNew(t *testing.T) {
	reg := New[generator]("macro type")

	if reg == nil {
		t.Fatal("New() returned nil")
	}
	if got := reg.List(); len(got) != 0 {
		t.Errorf("New registry should be empty, got %v", got)
	}
	if _, err := reg.Get("x"); err == nil || !strings.Contains(err.Error(), "macro type 'x'") {
		t.Errorf("errors should name the kind, got %v", err)
	}
	if _, err := New[generator]("").Get("x"); err == nil || !strings.Contains(err.Error(), "item 'x'") {
		t.Errorf("empty kind should default to item, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	reg := New[generator]("macro type")

	t.Run("register valid item", func(t *testing.T) {
		if err := reg.Register("demo", constant("a")); err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		if got := reg.List(); len(got) != 1 {
			t.Errorf("List() = %v, want one item", got)
		}
	})

	t.Run("register with blank name", func(t *testing.T) {
		err := reg.Register("  ", constant("b"))
		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with blank name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate ignoring case", func(t *testing.T) {
		err := reg.Register(" DEMO ", constant("c"))
		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "macro type 'demo'") {
			t.Errorf("error should name the kind and item, got %v", err)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[generator]("macro type")
	_ = reg.Register("demo", constant("value"))

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("Demo")
		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}
		if got() != "value" {
			t.Errorf("Get() returned the wrong item")
		}
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("nonexistent")
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() non-existing should return ErrNotFound, got %v", err)
		}
		if details := errors.GetErrorDetails(err); details["name"] != "nonexistent" {
			t.Errorf("error details should name the item, got %v", details)
		}
	})
}

func TestList(t *testing.T) {
	reg := New[generator]("macro type")

	for _, name := range []string{"charlie", "Alpha", "bravo"} {
		_ = reg.Register(name, constant(name))
	}

	list := reg.List()
	expected := []string{"alpha", "bravo", "charlie"}

	if len(list) != len(expected) {
		t.Fatalf("List() returned %d items, want %d", len(list), len(expected))
	}
	for i, name := range list {
		if name != expected[i] {
			t.Errorf("List()[%d] = %s, want %s", i, name, expected[i])
		}
	}
}

func TestGetNormalizesNames(t *testing.T) {
	reg := New[generator]("macro type")
	_ = reg.Register("demo", constant("x"))

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "demo", true},
		{"different case", "DeMo", true},
		{"surrounding space", " demo ", true},
		{"non-existing item", "other", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Get(tt.itemName)
			if got := err == nil; got != tt.want {
				t.Errorf("Get(%q) found = %v, want %v", tt.itemName, got, tt.want)
			}
		})
	}
}

func TestConcurrency(t *testing.T) {
	reg := New[generator]("macro type")
	const goroutines = 10
	const itemsPerGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				name := fmt.Sprintf("g%d-%d", id, i)
				_ = reg.Register(name, constant(name))
				_, _ = reg.Get(name)
				_ = reg.List()
			}
		}(g)
	}
	wg.Wait()

	if got := len(reg.List()); got != goroutines*itemsPerGoroutine {
		t.Errorf("List() has %d items, want %d", got, goroutines*itemsPerGoroutine)
	}
}

func TestMustRegister(t *testing.T) {
	reg := New[generator]("macro type")
	MustRegister(reg, "demo", constant("x"))

	defer func() {
		if recover() == nil {
			t.Error("MustRegister() should panic on duplicate")
		}
	}()
	MustRegister(reg, "demo", constant("y"))
}
