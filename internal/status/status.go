// Package status classifies files by their verification results for reports.
package status

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/resolver"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// Status is the classification of one file.
type Status string

const (
	LibraryAllAC     Status = "LIBRARY_ALL_AC"
	LibraryPartialAC Status = "LIBRARY_PARTIAL_AC"
	LibrarySomeWA    Status = "LIBRARY_SOME_WA"
	LibraryAllWA     Status = "LIBRARY_ALL_WA"
	LibraryNoTests   Status = "LIBRARY_NO_TESTS"
	TestAccepted     Status = "TEST_ACCEPTED"
	TestWrongAnswer  Status = "TEST_WRONG_ANSWER"
	TestWaitingJudge Status = "TEST_WAITING_JUDGE"
)

// All lists every status in report order.
var All = []Status{
	LibraryAllAC,
	LibraryPartialAC,
	LibrarySomeWA,
	LibraryAllWA,
	LibraryNoTests,
	TestAccepted,
	TestWrongAnswer,
	TestWaitingJudge,
}

var descriptions = map[Status]string{
	LibraryAllAC:     "all tests accepted",
	LibraryPartialAC: "partially accepted",
	LibrarySomeWA:    "some tests failed",
	LibraryAllWA:     "all tests failed",
	LibraryNoTests:   "no tests",
	TestAccepted:     "accepted",
	TestWrongAnswer:  "wrong answer",
	TestWaitingJudge: "waiting for judge",
}

// IsSuccess reports whether the status is not a failure.
func (s Status) IsSuccess() bool {
	switch s {
	case LibrarySomeWA, LibraryAllWA, TestWrongAnswer:
		return false
	}
	return true
}

// IsLibrary reports whether s classifies a library file.
func (s Status) IsLibrary() bool {
	return strings.HasPrefix(string(s), "LIBRARY_")
}

// Label returns a human-readable title for the status.
func (s Status) Label() string {
	d, ok := descriptions[s]
	if !ok {
		return string(s)
	}
	return cases.Title(language.English).String(d)
}

// outcome is the collapsed state of one test file.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeSkipped
)

func testOutcome(fr *result.FileResult) outcome {
	if fr == nil || len(fr.Verifications) == 0 {
		return outcomeSkipped
	}
	if fr.HasStatus(result.Failure) {
		return outcomeFailure
	}
	if fr.HasStatus(result.Skipped) {
		return outcomeSkipped
	}
	return outcomeSuccess
}

// ClassifyTest classifies a test file by its own results. A nil result means
// the file has not been verified yet.
func ClassifyTest(fr *result.FileResult) Status {
	switch testOutcome(fr) {
	case outcomeFailure:
		return TestWrongAnswer
	case outcomeSkipped:
		return TestWaitingJudge
	default:
		return TestAccepted
	}
}

// ClassifyLibrary classifies a library file by the results of the test files
// that verify it. Nil entries count as skipped.
func ClassifyLibrary(tests []*result.FileResult) Status {
	if len(tests) == 0 {
		return LibraryNoTests
	}
	var success, failure int
	for _, fr := range tests {
		switch testOutcome(fr) {
		case outcomeSuccess:
			success++
		case outcomeFailure:
			failure++
		}
	}
	switch {
	case success == len(tests):
		return LibraryAllAC
	case failure == len(tests):
		return LibraryAllWA
	case failure > 0:
		return LibrarySomeWA
	default:
		return LibraryPartialAC
	}
}

// Classify classifies the file at path using the verified_with relation of res.
func Classify(in *model.Input, res *resolver.Resolver, results *result.VerifyCommandResult, path string) Status {
	lookup := func(p string) *result.FileResult {
		if results == nil {
			return nil
		}
		fr, ok := results.Files[p]
		if !ok {
			return nil
		}
		return &fr
	}

	if f, ok := in.File(path); ok && f.IsTest() {
		return ClassifyTest(lookup(path))
	}
	var tests []*result.FileResult
	for _, t := range res.VerifiedWith(path) {
		tests = append(tests, lookup(t))
	}
	return ClassifyLibrary(tests)
}
