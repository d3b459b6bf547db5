// Copyright (c) 2026 The crikey authors
// released under the ISC license

/*
Package crikey is a set of libraries for writing IRC clients.

Identifiers: irctypes (typed nicknames, channels, hosts, masks and message
targets, validated against server limits), ircmap (casemapping), ircmatch
(wildcard masks).

Wire: ircreader (line buffering), ircconn (non-blocking line framing over a
socket), ircmsg (message parsing and typed sources).

Client: client (a polling IRC client) and cmd/crikey.
*/
package crikey
