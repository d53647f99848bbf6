package bots

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAllowlistIsAllowed(t *testing.T) {
	t.Parallel()
	list, err := NewAllowlist([]string{"@testbot", "@SecondBot", "  @paddedbot  "})
	if err != nil {
		t.Fatalf("NewAllowlist: %v", err)
	}

	cases := []struct {
		name   string
		handle string
		want   bool
	}{
		{name: "listed handle", handle: "@testbot", want: true},
		{name: "mixed case entry kept as listed", handle: "@SecondBot", want: true},
		{name: "entries are trimmed at load", handle: "@paddedbot", want: true},
		{name: "unknown handle", handle: "@unknownbot", want: false},
		{name: "match is case sensitive", handle: "@Testbot", want: false},
		{name: "sigil is part of the handle", handle: "testbot", want: false},
		{name: "empty handle", handle: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := list.IsAllowed(tc.handle); got != tc.want {
				t.Fatalf("IsAllowed(%q) = %v, want %v", tc.handle, got, tc.want)
			}
		})
	}
}

func TestNewAllowlistValidation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		handles []string
		wantErr string
	}{
		{name: "missing sigil", handles: []string{"testbot"}, wantErr: "must start with @"},
		{name: "missing bot suffix", handles: []string{"@testchannel"}, wantErr: `must end with "bot"`},
		{name: "uppercase suffix accepted", handles: []string{"@testBOT"}},
		{name: "all offenders reported", handles: []string{"plainbot", "@nosuffix"}, wantErr: "plainbot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAllowlist(tc.handles)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("NewAllowlist(%v): %v", tc.handles, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewAllowlist(%v): expected error", tc.handles)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestNewAllowlistReportsEveryInvalidEntry(t *testing.T) {
	t.Parallel()
	_, err := NewAllowlist([]string{"first", "@second", "@okbot"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"first"`) || !strings.Contains(msg, `"@second"`) {
		t.Fatalf("error should name every invalid entry, got %q", msg)
	}
}

func TestLoadAllowlist(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bots.txt")
	if err := os.WriteFile(path, []byte("@testbot\n\n@otherbot\n"), 0o600); err != nil {
		t.Fatalf("write allow-list: %v", err)
	}
	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Size() != 2 {
		t.Fatalf("Size = %d, want 2", list.Size())
	}
	if !list.IsAllowed("@testbot") || !list.IsAllowed("@otherbot") {
		t.Fatal("expected both handles to be allowed")
	}
}

func TestLoadAllowlistMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing allow-list file")
	}
}

func TestLoadAllowlistInvalidEntry(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bots.txt")
	if err := os.WriteFile(path, []byte("@testbot\nnot-a-handle\n"), 0o600); err != nil {
		t.Fatalf("write allow-list: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid entry")
	}
}
