package main

import (
	"fmt"
	"strconv"
)

type command struct {
	name string // local, serve or join
	host string
	port int
}

// parseCommand reads the positional arguments left after flags.
// A positional port wins over the configured one.
func parseCommand(args []string, port int) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}
	cmd := command{name: args[0], port: port}
	rest := args[1:]

	switch cmd.name {
	case "local":
		if len(rest) != 0 {
			return command{}, fmt.Errorf("local takes no arguments")
		}
	case "serve":
		if len(rest) > 1 {
			return command{}, fmt.Errorf("serve takes at most a port")
		}
		if len(rest) == 1 {
			p, err := parsePort(rest[0])
			if err != nil {
				return command{}, err
			}
			cmd.port = p
		}
	case "join":
		if len(rest) < 1 || len(rest) > 2 {
			return command{}, fmt.Errorf("join needs a host and an optional port")
		}
		cmd.host = rest[0]
		if len(rest) == 2 {
			p, err := parsePort(rest[1])
			if err != nil {
				return command{}, err
			}
			cmd.port = p
		}
	default:
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	return cmd, nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return p, nil
}
