package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath turns a user-supplied path into an absolute one.
// $VAR and ${VAR} references are expanded, a leading ~ is replaced with the
// home directory, and relative results are joined onto base.
func resolvePath(p, base string) string {
	p = os.ExpandEnv(p)
	if home, ok := homePrefix(p); ok {
		if dir, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(dir, home)
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// homePrefix reports whether p starts at the home directory and returns
// the remainder after "~".
func homePrefix(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	for _, sep := range []string{"~/", "~" + string(filepath.Separator)} {
		if rest, ok := strings.CutPrefix(p, sep); ok {
			return rest, true
		}
	}
	return "", false
}
