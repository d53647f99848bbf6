package bots

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Allowlist is the fixed set of bot handles this service may probe. It is
// built once at startup and never mutated, so concurrent lookups need no
// locking. A fixed list keeps the service from being used to probe
// arbitrary third-party bots.
type Allowlist struct {
	handles map[string]struct{}
}

// Load reads a line-delimited handle file and builds an Allowlist. Lines
// are trimmed and blank lines skipped. Every entry must start with the @
// sigil and end with "bot" (any case); a file with invalid entries is a
// startup error naming each offender.
func Load(path string) (*Allowlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load allow-list: %w", err)
	}
	return NewAllowlist(strings.Split(string(data), "\n"))
}

// NewAllowlist builds an Allowlist from handles. Each handle is trimmed;
// empty entries are ignored. Invalid handles are reported all at once.
func NewAllowlist(handles []string) (*Allowlist, error) {
	set := make(map[string]struct{}, len(handles))
	var errs []error
	for _, handle := range handles {
		handle = strings.TrimSpace(handle)
		if handle == "" {
			continue
		}
		if err := validateHandle(handle); err != nil {
			errs = append(errs, err)
			continue
		}
		set[handle] = struct{}{}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Allowlist{handles: set}, nil
}

// IsAllowed reports whether the handle is on the list. Handles are
// compared exactly as listed, sigil included.
func (l *Allowlist) IsAllowed(handle string) bool {
	if l == nil {
		return false
	}
	_, ok := l.handles[handle]
	return ok
}

// Size returns the number of allow-listed handles.
func (l *Allowlist) Size() int {
	if l == nil {
		return 0
	}
	return len(l.handles)
}

func validateHandle(handle string) error {
	if !strings.HasPrefix(handle, "@") {
		return fmt.Errorf("invalid bot handle %q: must start with @", handle)
	}
	if !strings.HasSuffix(strings.ToLower(handle), "bot") {
		return fmt.Errorf("invalid bot handle %q: must end with \"bot\"", handle)
	}
	return nil
}
