package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreIsValid(t *testing.T) {
	t.Parallel()
	store := NewStore([]string{"FirstToken", "second-token", "  padded  "})

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "known token", token: "FirstToken", want: true},
		{name: "second token", token: "second-token", want: true},
		{name: "loader trims entries", token: "padded", want: true},
		{name: "unknown token", token: "WrongToken", want: false},
		{name: "case sensitive", token: "firsttoken", want: false},
		{name: "presented value is not trimmed", token: " FirstToken ", want: false},
		{name: "empty token", token: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := store.IsValid(tc.token); got != tc.want {
				t.Fatalf("IsValid(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestStoreIsValidNil(t *testing.T) {
	t.Parallel()
	var store *Store
	if store.IsValid("FirstToken") {
		t.Fatal("nil store should reject every token")
	}
	if store.Size() != 0 {
		t.Fatal("nil store should report size 0")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tokens.txt")
	content := "FirstToken\n\n  second-token  \n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Size() != 2 {
		t.Fatalf("Size = %d, want 2", store.Size())
	}
	if !store.IsValid("FirstToken") {
		t.Fatal("expected FirstToken to be valid")
	}
	if !store.IsValid("second-token") {
		t.Fatal("expected trimmed second-token to be valid")
	}
	if store.IsValid("  second-token  ") {
		t.Fatal("presented tokens must not be trimmed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tokens.txt")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Size() != 0 {
		t.Fatalf("Size = %d, want 0", store.Size())
	}
	if store.IsValid("") {
		t.Fatal("empty store should reject the empty token")
	}
}
