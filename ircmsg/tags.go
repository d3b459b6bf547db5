// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package ircmsg

import "strings"

var (
	valtoescape = strings.NewReplacer("\\", "\\\\", ";", "\\:", " ", "\\s", "\r", "\\r", "\n", "\\n")
)

// EscapeTagValue takes a value, and returns an escaped message tag value.
func EscapeTagValue(inString string) string {
	return valtoescape.Replace(inString)
}

// UnescapeTagValue takes an escaped message tag value, and returns the raw value.
// Unknown escapes drop the backslash and a trailing lone backslash is dropped.
func UnescapeTagValue(escapedValue string) string {
	if strings.IndexByte(escapedValue, '\\') == -1 {
		return escapedValue
	}

	var buf strings.Builder
	buf.Grow(len(escapedValue))
	for i := 0; i < len(escapedValue); i++ {
		if escapedValue[i] != '\\' {
			buf.WriteByte(escapedValue[i])
			continue
		}
		i++
		if i >= len(escapedValue) {
			break
		}
		switch escapedValue[i] {
		case ':':
			buf.WriteByte(';')
		case 's':
			buf.WriteByte(' ')
		case 'r':
			buf.WriteByte('\r')
		case 'n':
			buf.WriteByte('\n')
		default:
			buf.WriteByte(escapedValue[i])
		}
	}
	return buf.String()
}

func parseTags(raw string) map[string]string {
	tags := make(map[string]string)
	for _, fulltag := range strings.Split(raw, ";") {
		if fulltag == "" {
			continue
		}
		name, value, _ := strings.Cut(fulltag, "=")
		tags[name] = UnescapeTagValue(value)
	}
	return tags
}
