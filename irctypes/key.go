// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import "fmt"

// Key is a channel password, as passed to JOIN and MODE +k.
type Key struct {
	key string
}

// ParseKey validates raw as a channel key no longer than limits.KeyLen.
// Keys are 7-bit and may not contain NUL, BELL, CR, LF or space.
func ParseKey(raw string, limits Limits) (Key, error) {
	if len(raw) == 0 {
		return Key{}, parseError(Empty)
	}
	if len(raw) > limits.keyLen() {
		return Key{}, parseError(TooLong)
	}
	for i, r := range raw {
		switch {
		case r > 0x7f, r == 0, r == '\a', r == '\r', r == '\n', r == ' ':
			return Key{}, invalidChar(i, r)
		}
	}
	return Key{key: raw}, nil
}

// MustParseKey is like ParseKey with default limits but panics on error.
func MustParseKey(raw string) Key {
	key, err := ParseKey(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseKey(%q): %v", raw, err))
	}
	return key
}

func (k Key) String() string { return k.key }

func (k Key) IsZero() bool { return k.key == "" }

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.key), nil
}

func (k *Key) UnmarshalText(data []byte) error {
	parsed, err := ParseKey(string(data), Limits{})
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
