package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ddraigan/diff-tool/internal/config"
	"github.com/Ddraigan/diff-tool/internal/nav"
)

type binding struct {
	command nav.Command
	key.Binding
}

// keyMap is the ordered list of bindings, one per command
type keyMap []binding

func newKeyMap(km config.Keymap) keyMap {
	var out keyMap
	for _, cmd := range nav.Commands {
		keys := km.Keys(cmd)
		if len(keys) == 0 {
			continue
		}
		out = append(out, binding{
			command: cmd,
			Binding: key.NewBinding(
				key.WithKeys(keys...),
				key.WithHelp(helpKeys(keys), cmd.Description()),
			),
		})
	}
	return out
}

func (k keyMap) lookup(msg tea.KeyMsg) (nav.Command, bool) {
	for _, b := range k {
		if key.Matches(msg, b.Binding) {
			return b.command, true
		}
	}
	return 0, false
}

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, " / ")
}
