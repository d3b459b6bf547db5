// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

/*
Package client is a single-threaded IRC client.

A Client owns one ircconn.Connection and is driven by polling it: Run loops
until the context ends, and Step performs one poll for callers that run
their own loop. Incoming and outgoing messages are dispatched through
eventmgr, so handlers can be attached per command, for "all" messages, or
for the "raw" lines.

The client answers PING, records registration on RPL_WELCOME, applies
RPL_ISUPPORT limits (NICKLEN, CHANTYPES, CASEMAPPING and friends) to the
identifiers it validates, and retries a nickname that is already in use.
*/
package client
