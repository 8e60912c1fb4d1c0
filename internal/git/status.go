package git

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileStatus is a file's short git status
type FileStatus struct {
	Code string // M, A, D, ??, or "" when the file is unchanged
	Path string
}

// Describe returns a human readable form of the status code
func (s FileStatus) Describe() string {
	switch strings.TrimSpace(s.Code) {
	case "":
		return "unchanged"
	case "??":
		return "untracked"
	case "!!":
		return "ignored"
	case "A":
		return "added"
	case "D":
		return "deleted"
	case "R":
		return "renamed"
	default:
		return "modified"
	}
}

// GetStatus returns the status of one file from git status --porcelain
func GetStatus(ctx context.Context, t Target) (FileStatus, error) {
	path := t.Path
	if t.ChangeDir {
		path = filepath.Base(t.Path)
	}

	args := []string{"status", "--porcelain", "--ignored", "--", path}
	if t.ChangeDir {
		args = append([]string{"-C", filepath.Dir(t.Path)}, args...)
	}

	out, err := run(ctx, "", args...)
	if err != nil {
		return FileStatus{}, errors.Wrapf(err, "git status %s", t.Path)
	}
	return parseStatus(string(out), t.Path), nil
}

// parseStatus reads the first porcelain entry. The two status columns are
// collapsed so a staged-only or worktree-only change reads the same.
func parseStatus(out, path string) FileStatus {
	line, _, _ := strings.Cut(out, "\n")
	if len(line) < 3 {
		return FileStatus{Path: path}
	}
	code := line[:2]
	if code != "??" && code != "!!" {
		code = strings.TrimSpace(code)
		if len(code) > 1 {
			code = code[:1]
		}
	}
	return FileStatus{Code: code, Path: path}
}
