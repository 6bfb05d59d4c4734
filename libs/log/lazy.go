package log

import "encoding/hex"

// LazyHex hex encodes key and proof bytes only when the entry is written.
type LazyHex struct {
	b []byte
}

func NewLazyHex(b []byte) *LazyHex {
	return &LazyHex{b}
}

func (l *LazyHex) String() string {
	return hex.EncodeToString(l.b)
}
