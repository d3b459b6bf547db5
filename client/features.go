// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package client

import (
	"strconv"
	"strings"
)

// ServerFeatures holds a map of server features (RPL_ISUPPORT).
type ServerFeatures map[string]interface{}

// parseFeatureValue changes a raw RPL_ISUPPORT value into a better one.
func parseFeatureValue(name string, value string) interface{} {
	switch name {
	case "LINELEN":
		num, err := strconv.Atoi(value)
		if err != nil || num < 0 {
			return 512
		}
		return num
	case "NICKLEN", "CHANNELLEN", "TOPICLEN", "USERLEN", "KEYLEN":
		num, err := strconv.Atoi(value)
		if err != nil || num < 0 {
			return nil
		}
		return num
	}
	return value
}

// Parse the given RPL_ISUPPORT-type tokens and add them to our support list.
// A token of the form -NAME removes NAME.
func (sf ServerFeatures) Parse(tokens ...string) {
	for _, token := range tokens {
		if strings.HasPrefix(token, "-") {
			delete(sf, strings.ToUpper(token[1:]))
			continue
		}
		if name, value, found := strings.Cut(token, "="); found {
			name = strings.ToUpper(name)
			sf[name] = parseFeatureValue(name, value)
		} else {
			sf[strings.ToUpper(token)] = true
		}
	}
}
