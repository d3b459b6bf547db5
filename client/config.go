// Copyright (c) 2026 The crikey authors
// released under the ISC license

package client

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/goshuirc/crikey/irctypes"
)

// DefaultPollInterval is how long Run sleeps when a poll returned nothing.
const DefaultPollInterval = 100 * time.Millisecond

var (
	// ErrorNoServer indicates that no server address was configured.
	ErrorNoServer = errors.New("no server provided")
)

// Config describes a single connection to an IRC server.
type Config struct {
	Server      string `yaml:"server"`
	TLS         bool   `yaml:"tls"`
	TLSInsecure bool   `yaml:"tls-insecure"`
	Password    string `yaml:"password"`

	Nick     string   `yaml:"nick"`
	User     string   `yaml:"user"`
	RealName string   `yaml:"realname"`
	Channels []string `yaml:"channels"`

	PollInterval time.Duration `yaml:"poll-interval"`
	Debug        bool          `yaml:"debug"`

	// Limits applies until the server's RPL_ISUPPORT says otherwise.
	Limits irctypes.Limits `yaml:"limits"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", filename, err)
	}
	return &config, nil
}

// registration is the validated form of the identity fields of a Config.
type registration struct {
	nick     irctypes.Nickname
	user     irctypes.User
	realName string
	channels []irctypes.Channel
}

func (config *Config) validate() (reg registration, err error) {
	if config.Server == "" {
		return reg, ErrorNoServer
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}

	if reg.nick, err = irctypes.ParseNickname(config.Nick, config.Limits); err != nil {
		return reg, fmt.Errorf("invalid nick %q: %w", config.Nick, err)
	}

	user := config.User
	if user == "" {
		user = config.Nick
	}
	if reg.user, err = irctypes.ParseUser(user, config.Limits); err != nil {
		return reg, fmt.Errorf("invalid user %q: %w", user, err)
	}

	reg.realName = config.RealName
	if reg.realName == "" {
		reg.realName = config.Nick
	}

	for _, name := range config.Channels {
		channel, err := irctypes.ParseChannel(name, config.Limits)
		if err != nil {
			return reg, fmt.Errorf("invalid channel %q: %w", name, err)
		}
		reg.channels = append(reg.channels, channel)
	}
	return reg, nil
}
