package internal

import (
	"fmt"
	"strings"
)

// KeyFilter decides whether a key id may be used by a signer. Filter
// returns nil for accepted ids.
type KeyFilter interface {
	Filter(keyID string) error
	String() string
}

// ValidateKeyID rejects ids that cannot safely become a file stem: empty
// ids, ids containing path separators or NUL, and ids starting with a dot.
func ValidateKeyID(keyID string) error {
	switch {
	case keyID == "":
		return fmt.Errorf("key id is empty")
	case strings.ContainsAny(keyID, "/\\\x00"):
		return fmt.Errorf("key id %q contains a path separator", keyID)
	case strings.HasPrefix(keyID, "."):
		return fmt.Errorf("key id %q starts with a dot", keyID)
	}
	return nil
}
