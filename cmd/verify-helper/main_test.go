// Package main tests for the verify-helper CLI entry point.
package main

import (
	"os/exec"
	"strings"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", "/dev/null", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build main package: %v", err)
	}
}

// TestMain_HelpFlag verifies the --help flag lists the commands.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command("go", "run", ".", "--help").CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}
	for _, want := range []string{"run", "merge-result", "status"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("--help output missing %q:\n%s", want, out)
		}
	}
}

// TestMain_UnknownCommand verifies usage errors fail with a message.
func TestMain_UnknownCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command("go", "run", ".", "frobnicate").CombinedOutput()
	if _, ok := err.(*exec.ExitError); !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if !strings.Contains(string(out), `unknown command "frobnicate"`) {
		t.Errorf("output missing unknown command message:\n%s", out)
	}
}
