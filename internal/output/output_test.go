package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/status"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return NewWithWriters(stdout, stderr, false), stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("Println() = %q, want %q", got, "hello world\n")
	}
}

func TestWriter_Info_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SetQuiet(true)
	w.Info("hidden")
	if stdout.Len() != 0 {
		t.Errorf("Info() in quiet mode wrote %q", stdout.String())
	}

	w.SetQuiet(false)
	w.Info("shown")
	if got := stdout.String(); got != "shown\n" {
		t.Errorf("Info() = %q, want %q", got, "shown\n")
	}
}

func TestWriter_Warning(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Warning("unknown field %q", "retries")

	if stdout.Len() != 0 {
		t.Errorf("Warning() wrote to stdout: %q", stdout.String())
	}
	if got := stderr.String(); got != "warning: unknown field \"retries\"\n" {
		t.Errorf("Warning() = %q", got)
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("input not found")

	if got := stderr.String(); got != "verify-helper: input not found\n" {
		t.Errorf("ErrorPrefix() = %q", got)
	}
}

func TestWriter_ErrorPrefix_Color(t *testing.T) {
	stderr := &bytes.Buffer{}
	w := NewWithWriters(&bytes.Buffer{}, stderr, true)

	w.ErrorPrefix("boom")

	if !strings.Contains(stderr.String(), red) {
		t.Errorf("ErrorPrefix() with color = %q, want ANSI red", stderr.String())
	}
}

func TestWriter_Table(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Table([]string{"NAME", "STATUS"}, [][]string{
		{"lib/a.hpp", "LIBRARY_ALL_AC"},
		{"b", "TEST_ACCEPTED"},
	})

	want := "NAME       STATUS\n" +
		"---------  --------------\n" +
		"lib/a.hpp  LIBRARY_ALL_AC\n" +
		"b          TEST_ACCEPTED\n"
	if got := stdout.String(); got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriter_StatusReport(t *testing.T) {
	in := model.NewInput(map[string]model.File{
		"lib/a.hpp":  {},
		"lib/b.hpp":  {},
		"test/a.cpp": {Dependencies: []string{"lib/a.hpp"}, Verification: []model.Step{model.DummyStep{}}},
	}, nil)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := &result.VerifyCommandResult{Files: map[string]result.FileResult{
		"test/a.cpp": {Verifications: []result.VerificationResult{{Status: result.Failure, LastExecutionTime: at}}},
	}}
	w, stdout, _ := newTestWriter()

	w.StatusReport(status.Build(in, res, nil))

	out := stdout.String()
	for _, want := range []string{
		"x  lib/a.hpp   LIBRARY_ALL_WA     test/a.cpp",
		"+  lib/b.hpp   LIBRARY_NO_TESTS",
		"x  test/a.cpp  TEST_WRONG_ANSWER",
		"=== Summary ===",
		"  All Tests Failed: 1",
		"  No Tests: 1",
		"  Wrong Answer: 1",
		"2 of 3 files failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("StatusReport() output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_RunSummary(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := &result.VerifyCommandResult{
		TotalSeconds: 3.5,
		Files: map[string]result.FileResult{
			"test/b.cpp": {Verifications: []result.VerificationResult{{Status: result.Failure, Elapsed: 1, LastExecutionTime: at}}},
			"test/a.cpp": {Verifications: []result.VerificationResult{{Status: result.Success, Elapsed: 2.5, LastExecutionTime: at}}},
			"test/c.cpp": {Verifications: []result.VerificationResult{{Status: result.Skipped, LastExecutionTime: at}}},
		},
	}
	w, stdout, _ := newTestWriter()

	w.RunSummary(res)

	out := stdout.String()
	for _, want := range []string{
		"    + test/a.cpp (2.50s)\n    x test/b.cpp (1.00s)\n    - test/c.cpp (0.00s)\n",
		"  Verified: 3",
		"  Succeeded: 1",
		"  Failed: 1",
		"  Skipped: 1",
		"  Total time: 3.50s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RunSummary() output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_RunSummary_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.RunSummary(result.New())

	if stdout.Len() != 0 {
		t.Errorf("RunSummary() in quiet mode wrote %q", stdout.String())
	}
}
