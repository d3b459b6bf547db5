// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package ircmsg

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrorLineIsEmpty indicates that the given IRC line was empty.
	ErrorLineIsEmpty = errors.New("line is empty")
	// ErrorCommandMissing indicates that a message to be sent has no command.
	ErrorCommandMissing = errors.New("IRC messages MUST have a command")
	// ErrorBadParam indicates that a non-final parameter could not be sent
	// as a middle parameter.
	ErrorBadParam = errors.New("cannot have an empty param, a param with spaces, or a param that starts with ':' before the last parameter")
)

// Message is a single IRC protocol message. Tags without a value map to "".
type Message struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

// MakeMessage provides a simple way to create a new Message.
func MakeMessage(prefix string, command string, params ...string) Message {
	return Message{
		Prefix:  prefix,
		Command: command,
		Params:  params,
	}
}

// ParseLine creates and returns a Message from the given IRC line.
//
// Quirks:
//
//	The RFCs say that last parameters with no characters MUST be a trailing.
//	IE, they need to be prefixed with ":". We disagree with that and handle
//	incoming last empty parameters whether they are trailing or ordinary
//	parameters. However, we do follow that rule when emitting lines.
func ParseLine(line string) (msg Message, err error) {
	line = strings.Trim(line, "\r\n")
	line = strings.TrimLeft(line, " ")
	if len(line) < 1 {
		return msg, ErrorLineIsEmpty
	}

	// tags
	if line[0] == '@' {
		tags, rest, found := strings.Cut(line, " ")
		if !found {
			return msg, ErrorLineIsEmpty
		}
		msg.Tags = parseTags(tags[1:])
		line = strings.TrimLeft(rest, " ")
		if len(line) < 1 {
			return msg, ErrorLineIsEmpty
		}
	}

	// prefix
	if line[0] == ':' {
		prefix, rest, found := strings.Cut(line, " ")
		if !found {
			return msg, ErrorLineIsEmpty
		}
		msg.Prefix = prefix[1:]
		line = strings.TrimLeft(rest, " ")
	}

	if len(line) < 1 {
		return msg, ErrorLineIsEmpty
	}

	// command
	command, rest, found := strings.Cut(line, " ")
	msg.Command = strings.ToUpper(command)
	if !found {
		return msg, nil
	}
	line = strings.TrimLeft(rest, " ")

	// parameters
	for len(line) > 0 {
		// handle trailing
		if line[0] == ':' {
			msg.Params = append(msg.Params, line[1:])
			break
		}
		param, rest, _ := strings.Cut(line, " ")
		msg.Params = append(msg.Params, param)
		line = strings.TrimLeft(rest, " ")
	}

	return msg, nil
}

// Param returns the i'th parameter, or "" if there are not that many.
func (msg *Message) Param(i int) string {
	if i < len(msg.Params) {
		return msg.Params[i]
	}
	return ""
}

// Line returns a sendable line, CRLF included, created from a Message.
func (msg *Message) Line() (string, error) {
	if len(msg.Command) < 1 {
		return "", ErrorCommandMissing
	}

	var buf strings.Builder

	if len(msg.Tags) > 0 {
		names := make([]string, 0, len(msg.Tags))
		for name := range msg.Tags {
			names = append(names, name)
		}
		sort.Strings(names)

		buf.WriteByte('@')
		for i, name := range names {
			if i > 0 {
				buf.WriteByte(';')
			}
			buf.WriteString(name)
			if value := msg.Tags[name]; value != "" {
				buf.WriteByte('=')
				buf.WriteString(EscapeTagValue(value))
			}
		}
		buf.WriteByte(' ')
	}

	if len(msg.Prefix) > 0 {
		buf.WriteByte(':')
		buf.WriteString(msg.Prefix)
		buf.WriteByte(' ')
	}

	buf.WriteString(msg.Command)

	for i, param := range msg.Params {
		buf.WriteByte(' ')
		if len(param) < 1 || strings.IndexByte(param, ' ') != -1 || param[0] == ':' {
			if i != len(msg.Params)-1 {
				return "", ErrorBadParam
			}
			buf.WriteByte(':')
		}
		buf.WriteString(param)
	}

	buf.WriteString("\r\n")
	return buf.String(), nil
}
