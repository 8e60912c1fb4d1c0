// Package config loads the keymap, colors and diff options from a TOML file.
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"github.com/Ddraigan/diff-tool/internal/git"
	"github.com/Ddraigan/diff-tool/internal/nav"
)

// EnvDir overrides the directory config.toml is read from
const EnvDir = "DIFF_TOOL_CONFIG"

const fileName = "config.toml"

// Config is the user configuration
type Config struct {
	Keymap Keymap `toml:"keymap"`
	Colors Colors `toml:"colors"`
	Diff   Diff   `toml:"diff"`
}

// Colors overrides the pane palette. Values are lipgloss colors
// ("#83f28c", "42", ...); empty keeps the default.
type Colors struct {
	AdditionFg string `toml:"addition_fg,omitempty"`
	AdditionBg string `toml:"addition_bg,omitempty"`
	RemovalFg  string `toml:"removal_fg,omitempty"`
	RemovalBg  string `toml:"removal_bg,omitempty"`
	BlankBg    string `toml:"blank_bg,omitempty"`
	Accent     string `toml:"accent,omitempty"`
}

// Diff holds options for running git
type Diff struct {
	ContextLines int   `toml:"context_lines"`
	Watch        *bool `toml:"watch,omitempty"`
	Highlight    *bool `toml:"highlight,omitempty"`
}

// WatchEnabled reports whether the file should be watched for changes
func (d Diff) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// HighlightEnabled reports whether pane content is syntax highlighted
func (d Diff) HighlightEnabled() bool {
	return d.Highlight == nil || *d.Highlight
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Keymap: DefaultKeymap(),
		Diff:   Diff{ContextLines: git.DefaultContext},
	}
}

// Write encodes cfg as TOML
func (cfg Config) Write(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "encode config")
}

// file mirrors Config with the keymap still as raw strings so every
// entry can be validated with its key in the error.
type file struct {
	Keymap map[string]string `toml:"keymap"`
	Colors Colors            `toml:"colors"`
	Diff   Diff              `toml:"diff"`
}

// Load reads the config at path. An empty path resolves the default
// location; a missing default file yields Default().
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(err, "read config")
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML config text on top of the defaults
func Parse(data string) (Config, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return Config{}, errors.Wrap(err, "decode")
	}

	cfg := Default()
	cfg.Colors = f.Colors
	if f.Diff.ContextLines < 0 {
		return Config{}, errors.Errorf("diff.context_lines must not be negative, got %d", f.Diff.ContextLines)
	}
	if f.Diff.ContextLines > 0 {
		cfg.Diff.ContextLines = f.Diff.ContextLines
	}
	cfg.Diff.Watch = f.Diff.Watch
	cfg.Diff.Highlight = f.Diff.Highlight

	if len(f.Keymap) > 0 {
		km, err := ParseKeymap(f.Keymap)
		if err != nil {
			return Config{}, err
		}
		cfg.Keymap = km
	}
	return cfg, nil
}

// Path returns the config file location: $DIFF_TOOL_CONFIG/config.toml,
// or diff-tool/config.toml in the XDG config directories. It returns ""
// when no file exists.
func Path() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return filepath.Join(dir, fileName)
	}
	path, err := xdg.SearchConfigFile(filepath.Join("diff-tool", fileName))
	if err != nil {
		return ""
	}
	return path
}

// Keymap maps key descriptors, as reported by bubbletea, to commands
type Keymap map[string]nav.Command

// DefaultKeymap is used when the config has no [keymap] table
func DefaultKeymap() Keymap {
	return Keymap{
		"q":      nav.Quit,
		"esc":    nav.Quit,
		"ctrl+c": nav.Quit,
		"ctrl+d": nav.Quit,
		"j":      nav.NextRow,
		"down":   nav.NextRow,
		"k":      nav.PrevRow,
		"up":     nav.PrevRow,
		"g":      nav.FirstRow,
		"home":   nav.FirstRow,
		"G":      nav.LastRow,
		"end":    nav.LastRow,
	}
}

// ParseKeymap validates raw key → command name entries
func ParseKeymap(raw map[string]string) (Keymap, error) {
	km := make(Keymap, len(raw))
	for k, name := range raw {
		key := NormalizeKey(k)
		if key == "" {
			return nil, errors.Errorf("keymap: empty key for %q", name)
		}
		cmd, err := nav.ParseCommand(name)
		if err != nil {
			return nil, errors.Wrapf(err, "keymap %q", k)
		}
		km[key] = cmd
	}
	return km, nil
}

// NormalizeKey converts a key descriptor to the string bubbletea reports
// for it. "Shift+g" becomes "G", modifiers and named keys are lowercased.
func NormalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if k == "" {
		return ""
	}
	if strings.EqualFold(k, "space") {
		return " "
	}

	parts := strings.Split(k, "+")
	last := parts[len(parts)-1]
	if last == "" {
		// "+" itself, or a combination ending in "+"
		last = "+"
		parts = parts[:len(parts)-1]
		if len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		parts = append(parts, last)
	}

	mods := make([]string, 0, len(parts)-1)
	shift := false
	for _, m := range parts[:len(parts)-1] {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "shift" {
			shift = true
			continue
		}
		mods = append(mods, m)
	}

	if len([]rune(last)) == 1 {
		switch {
		case shift:
			last = strings.ToUpper(last)
		case len(mods) > 0:
			last = strings.ToLower(last)
		}
	} else {
		last = strings.ToLower(last)
		if shift {
			mods = append(mods, "shift")
		}
	}

	return strings.Join(append(mods, last), "+")
}

// Keys returns the keys bound to cmd, sorted
func (km Keymap) Keys(cmd nav.Command) []string {
	var keys []string
	for k, c := range km {
		if c == cmd {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
