package runner

import (
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// shellBuiltins is the set of common shell builtins that don't exist as
// external commands in PATH but are always available via sh -c.
var shellBuiltins = map[string]struct{}{
	"exit":     {},
	"test":     {},
	"[":        {},
	"echo":     {},
	"cd":       {},
	"pwd":      {},
	"export":   {},
	"unset":    {},
	"set":      {},
	"true":     {},
	"false":    {},
	"read":     {},
	"eval":     {},
	"exec":     {},
	"source":   {},
	".":        {},
	"command":  {},
	"printf":   {},
	"ulimit":   {},
	"timeout":  {},
	"env":      {},
	"time":     {},
	"trap":     {},
	"wait":     {},
	"umask":    {},
	"readonly": {},
}

// CommandName returns the program a shell script starts with. Leading
// variable assignments are skipped. It returns "" when the script is empty or
// cannot be tokenized.
func CommandName(script string) string {
	words, err := shlex.Split(script)
	if err != nil {
		return ""
	}
	for _, w := range words {
		if isAssignment(w) {
			continue
		}
		return w
	}
	return ""
}

func isAssignment(word string) bool {
	eq := strings.IndexByte(word, '=')
	if eq <= 0 {
		return false
	}
	for _, r := range word[:eq] {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// IsAvailable reports whether the program a script starts with can be found.
// Paths (names containing a slash) and shell builtins are assumed available;
// they are resolved by the shell at run time.
func IsAvailable(script string) bool {
	name := CommandName(script)
	if name == "" || strings.ContainsRune(name, '/') {
		return true
	}
	if _, ok := shellBuiltins[name]; ok {
		return true
	}
	_, err := exec.LookPath(name)
	return err == nil
}
