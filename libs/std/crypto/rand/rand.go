package rand

import (
	crand "crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// Reader is the randomness source used for key generation.
var Reader io.Reader = crand.Reader

func Read(b []byte) error {
	if _, err := io.ReadFull(Reader, b); err != nil {
		return errors.Wrap(err, "reading system randomness")
	}
	return nil
}

// Bytes returns n random bytes.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
