// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import "fmt"

// User is the username sent in USER and seen as the middle of nick!user@host.
type User struct {
	user string
}

// ParseUser validates raw as a username. It is bounded by limits.UserLen
// only when that is set.
func ParseUser(raw string, limits Limits) (User, error) {
	if len(raw) == 0 {
		return User{}, parseError(Empty)
	}
	if limits.UserLen > 0 && len(raw) > limits.UserLen {
		return User{}, parseError(TooLong)
	}
	for i, r := range raw {
		switch r {
		case 0, '\r', '\n', ' ', '@', ':':
			return User{}, invalidChar(i, r)
		}
	}
	return User{user: raw}, nil
}

// MustParseUser is like ParseUser with default limits but panics on error.
func MustParseUser(raw string) User {
	user, err := ParseUser(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseUser(%q): %v", raw, err))
	}
	return user
}

func (u User) String() string { return u.user }

func (u User) IsZero() bool { return u.user == "" }

func (u User) MarshalText() ([]byte, error) {
	return []byte(u.user), nil
}

func (u *User) UnmarshalText(data []byte) error {
	parsed, err := ParseUser(string(data), Limits{})
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
