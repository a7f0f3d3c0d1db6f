package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/status"
)

func TestCommandsFixture_Status(t *testing.T) {
	requireShell(t)
	t.Parallel()
	root := copyFixture(t, "commands")
	v := newFixtureVerifier(t, root, fixedTimestamps{})

	res, err := v.Verify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	in, err := model.Load(filepath.Join(root, "verify_files.json"))
	if err != nil {
		t.Fatalf("failed to load input: %v", err)
	}

	report := status.Build(in, res, nil)
	want := map[string]status.Status{
		"lib/sum.sh":            status.LibrarySomeWA,
		"lib/unused.sh":         status.LibraryNoTests,
		"tests/sum.test.sh":     status.TestAccepted,
		"tests/broken.test.sh":  status.TestWrongAnswer,
		"tests/compile.test.sh": status.TestWrongAnswer,
		"tests/const.test.sh":   status.TestAccepted,
	}
	if len(report.Entries) != len(want) {
		t.Fatalf("report has %d entries, want %d", len(report.Entries), len(want))
	}
	for _, e := range report.Entries {
		if e.Status != want[e.Path] {
			t.Errorf("%s: status = %s, want %s", e.Path, e.Status, want[e.Path])
		}
	}
	if report.IsSuccess() {
		t.Error("IsSuccess() = true, want false")
	}
	if got := len(report.Failed()); got != 3 {
		t.Errorf("Failed() has %d entries, want 3", got)
	}

	excluded := status.Build(in, res, []string{"tests/broken.test.sh"})
	for _, e := range excluded.Entries {
		if e.Path == "lib/sum.sh" && e.Status != status.LibraryAllAC {
			t.Errorf("lib/sum.sh with broken test excluded: status = %s, want %s", e.Status, status.LibraryAllAC)
		}
	}
}

func TestCyclicFixture(t *testing.T) {
	t.Parallel()
	in, err := model.Load(filepath.Join(fixturesDir(), "cyclic", "verify_files.json"))
	if err != nil {
		t.Fatalf("failed to load input: %v", err)
	}

	closure := in.Closure("a.test.cpp")
	want := []string{"a.hpp", "a.test.cpp", "b.hpp"}
	if len(closure) != len(want) {
		t.Fatalf("Closure() = %v, want %v", closure, want)
	}
	for i := range want {
		if closure[i] != want[i] {
			t.Errorf("Closure()[%d] = %q, want %q", i, closure[i], want[i])
		}
	}

	res := result.New()
	res.Files["a.test.cpp"] = result.FileResult{
		Verifications: []result.VerificationResult{{Status: result.Success}},
	}
	report := status.Build(in, res, nil)
	for _, e := range report.Entries {
		if e.Path == "a.test.cpp" {
			continue
		}
		if e.Status != status.LibraryAllAC {
			t.Errorf("%s: status = %s, want %s", e.Path, e.Status, status.LibraryAllAC)
		}
		if len(e.VerifiedWith) != 1 || e.VerifiedWith[0] != "a.test.cpp" {
			t.Errorf("%s: VerifiedWith = %v, want [a.test.cpp]", e.Path, e.VerifiedWith)
		}
	}
}
