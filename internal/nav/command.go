package nav

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Command is a navigation command produced from key input
type Command int

const (
	PrevRow Command = iota
	NextRow
	FirstRow
	LastRow
	Quit
)

// Commands lists every command in help order
var Commands = []Command{PrevRow, NextRow, FirstRow, LastRow, Quit}

// ErrUnknownCommand is returned by ParseCommand for names outside the command set
var ErrUnknownCommand = errors.New("unknown command")

// String returns the name used in config files
func (c Command) String() string {
	switch c {
	case PrevRow:
		return "PrevRow"
	case NextRow:
		return "NextRow"
	case FirstRow:
		return "FirstRow"
	case LastRow:
		return "LastRow"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Description is the short help text for the command
func (c Command) Description() string {
	switch c {
	case PrevRow:
		return "Scroll up one row"
	case NextRow:
		return "Scroll down one row"
	case FirstRow:
		return "Jump to top row"
	case LastRow:
		return "Jump to bottom row"
	case Quit:
		return "Quit application"
	default:
		return ""
	}
}

// ParseCommand resolves a config name to a command, ignoring case
func ParseCommand(name string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "prevrow", "previousrow":
		return PrevRow, nil
	case "nextrow":
		return NextRow, nil
	case "firstrow":
		return FirstRow, nil
	case "lastrow":
		return LastRow, nil
	case "quit":
		return Quit, nil
	}
	return 0, errors.Wrapf(ErrUnknownCommand, "%q", name)
}

// UnmarshalText lets commands be decoded directly from config values
func (c *Command) UnmarshalText(text []byte) error {
	cmd, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = cmd
	return nil
}

// MarshalText writes the config name of the command
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
