package git

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultContext is the -U value used so the single hunk covers the whole file
const DefaultContext = 100000

// ErrNotUTF8 is returned when git produces output that is not valid UTF-8
var ErrNotUTF8 = errors.New("git output is not valid UTF-8")

// Target describes which file to diff and how to invoke git for it
type Target struct {
	Path string
	// ChangeDir runs git from the file's directory (git -C <dir>), so files
	// outside the current repository can be diffed.
	ChangeDir bool
	// Context is the number of context lines; <= 0 uses DefaultContext.
	Context int
}

// Dir returns the directory git runs in for this target
func (t Target) Dir() string {
	if t.ChangeDir {
		return filepath.Dir(t.Path)
	}
	return ""
}

// Args returns the git arguments for the target
func (t Target) Args() []string {
	lines := t.Context
	if lines <= 0 {
		lines = DefaultContext
	}
	unified := "-U" + strconv.Itoa(lines)

	if t.ChangeDir {
		return []string{"-C", filepath.Dir(t.Path), "diff", unified, "--", filepath.Base(t.Path)}
	}
	return []string{"diff", unified, "--", t.Path}
}

// RawDiff runs git diff for the target and returns its output
func RawDiff(ctx context.Context, t Target) (string, error) {
	out, err := run(ctx, "", t.Args()...)
	if err != nil {
		return "", errors.Wrapf(err, "git diff %s", t.Path)
	}
	return decode(out)
}

// Load runs git diff for the target and parses the result
func Load(ctx context.Context, t Target) (Diff, error) {
	raw, err := RawDiff(ctx, t)
	if err != nil {
		return Diff{}, err
	}
	return Parse(raw), nil
}

// CheckRepo returns an error if dir is not inside a git work tree
func CheckRepo(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return errors.Wrapf(err, "not a git repository: %s", dir)
	}
	return nil
}

func decode(out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", ErrNotUTF8
	}
	return string(out), nil
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
