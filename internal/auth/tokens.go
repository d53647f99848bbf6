package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Store holds the SHA-256 digests of the access tokens callers may present.
// It is built once at startup and never mutated, so concurrent lookups need
// no locking. Plaintext token material is discarded after construction.
type Store struct {
	digests map[string]struct{}
}

// Load reads a line-delimited token file and builds a Store. Lines are
// trimmed and blank lines skipped. An empty file yields an empty store,
// which rejects every request.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	return NewStore(strings.Split(string(data), "\n")), nil
}

// NewStore builds a Store from plaintext tokens. Each token is trimmed;
// empty entries are ignored.
func NewStore(tokens []string) *Store {
	digests := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		digests[digest(token)] = struct{}{}
	}
	return &Store{digests: digests}
}

// IsValid reports whether the presented value matches a stored token.
// The value is compared as presented: case-sensitive, no trimming.
func (s *Store) IsValid(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.digests[digest(token)]
	return ok
}

// Size returns the number of distinct tokens loaded.
func (s *Store) Size() int {
	if s == nil {
		return 0
	}
	return len(s.digests)
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
