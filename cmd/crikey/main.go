// Copyright (c) 2026 The crikey authors
// released under the ISC license

// crikey connects to an IRC server, registers, and prints every line the
// server sends to stdout until interrupted.
//
// Settings come from an optional YAML file (--config); flags given on the
// command line override it.
package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-log/log"
	"github.com/goshuirc/eventmgr"
	"github.com/spf13/pflag"

	"github.com/goshuirc/crikey/client"
)

// stderrLogger uses the standard log package as the logger.
type stderrLogger struct {
	logger *stdlog.Logger
}

func (l *stderrLogger) Log(v ...interface{}) {
	l.logger.Output(3, fmt.Sprintln(v...))
}

func (l *stderrLogger) Logf(format string, v ...interface{}) {
	l.logger.Output(3, fmt.Sprintf(format, v...))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configFile string
	config := client.Config{
		Server:   "127.0.0.1:6667",
		Nick:     "foo",
		User:     "pjohnson",
		RealName: "Potato Johnson",
	}

	flagSet := pflag.NewFlagSet("crikey", pflag.ContinueOnError)
	flagSet.StringVarP(&configFile, "config", "c", "", "YAML config file; flags override its values")
	flagSet.StringVarP(&config.Server, "server", "s", config.Server, "server address as host:port")
	flagSet.BoolVar(&config.TLS, "tls", false, "connect with TLS")
	flagSet.BoolVar(&config.TLSInsecure, "tls-insecure", false, "skip TLS certificate verification")
	flagSet.StringVar(&config.Password, "password", "", "connection password (PASS)")
	flagSet.StringVarP(&config.Nick, "nick", "n", config.Nick, "nickname")
	flagSet.StringVarP(&config.User, "user", "u", config.User, "username")
	flagSet.StringVar(&config.RealName, "realname", config.RealName, "real name")
	flagSet.StringSliceVarP(&config.Channels, "join", "j", nil, "channels to join after registration")
	flagSet.DurationVar(&config.PollInterval, "poll-interval", client.DefaultPollInterval, "sleep between polls when idle")
	flagSet.BoolVarP(&config.Debug, "debug", "d", false, "log every line sent and received")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if configFile != "" {
		loaded, err := client.LoadConfig(configFile)
		if err != nil {
			return err
		}
		config = mergeFlags(flagSet, *loaded, config)
	}

	log.DefaultLogger = &stderrLogger{logger: stdlog.New(os.Stderr, "", stdlog.LstdFlags)}

	c, err := client.New(config)
	if err != nil {
		return err
	}
	c.RegisterEvent("in", "raw", func(event string, info eventmgr.InfoMap) {
		fmt.Println(info["data"].(string))
	}, 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = c.Connect(dialCtx)
	cancel()
	if err != nil {
		return err
	}

	err = c.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// mergeFlags returns loaded with every flag the user actually set taken
// from flags instead.
func mergeFlags(flagSet *pflag.FlagSet, loaded, flags client.Config) client.Config {
	flagSet.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "server":
			loaded.Server = flags.Server
		case "tls":
			loaded.TLS = flags.TLS
		case "tls-insecure":
			loaded.TLSInsecure = flags.TLSInsecure
		case "password":
			loaded.Password = flags.Password
		case "nick":
			loaded.Nick = flags.Nick
		case "user":
			loaded.User = flags.User
		case "realname":
			loaded.RealName = flags.RealName
		case "join":
			loaded.Channels = flags.Channels
		case "poll-interval":
			loaded.PollInterval = flags.PollInterval
		case "debug":
			loaded.Debug = flags.Debug
		}
	})
	return loaded
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `crikey connects to an IRC server and prints what it says.

Usage:
  crikey [flags]

Flags:
%s`, flagSet.FlagUsages())
}
