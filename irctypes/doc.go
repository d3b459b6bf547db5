// Copyright (c) 2026 The crikey authors
// released under the ISC license

/*
Package irctypes has validated value types for the identifiers that appear
in IRC protocol lines: nicknames, channels, keys, usernames, hosts, target
masks and message targets.

Every type is built by a Parse function and is immutable afterwards, so a
value that exists is valid. String returns the wire form, and parsing that
form again gives back an equal value.

Server-dependent limits (NICKLEN, CHANNELLEN, KEYLEN, CHANTYPES, ...) are
passed in as a Limits value rather than read from global state. The zero
Limits uses the historical defaults; Limits.ApplyISupport updates it from a
server's RPL_ISUPPORT tokens.

Every failure is a *ParseError whose Kind says why the token was rejected:

	_, err := irctypes.ParseNickname("9lives", irctypes.Limits{})
	errors.Is(err, irctypes.ErrorInvalidLeadingChar) // true

The Parse functions never log and never guess. A token that fits no grammar
is rejected.
*/
package irctypes
