package mocks

import (
	"context"
	"sync"

	"github.com/AndreyAkinshin/verifyhelper/internal/judge"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// Judge implements judge.Judge for testing.
// Problems without a scripted outcome pass with a single accepted sample.
type Judge struct {
	mu           sync.Mutex
	outcomes     map[string]*judge.Outcome
	testErrs     map[string]error
	downloadErrs map[string]error
	downloads    []string
	tests        []judge.Request
}

// NewJudge creates a judge that accepts everything.
func NewJudge() *Judge {
	return &Judge{
		outcomes:     make(map[string]*judge.Outcome),
		testErrs:     make(map[string]error),
		downloadErrs: make(map[string]error),
	}
}

// WithOutcome scripts the outcome of testing problem.
func (m *Judge) WithOutcome(problem string, o judge.Outcome) *Judge {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[problem] = &o
	return m
}

// WithTestError makes Test fail for problem.
func (m *Judge) WithTestError(problem string, err error) *Judge {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.testErrs[problem] = err
	return m
}

// WithDownloadError makes Download fail for problem.
func (m *Judge) WithDownloadError(problem string, err error) *Judge {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadErrs[problem] = err
	return m
}

// Download implements judge.Judge.
func (m *Judge) Download(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads = append(m.downloads, url)
	return m.downloadErrs[url]
}

// Test implements judge.Judge.
func (m *Judge) Test(_ context.Context, req judge.Request) (*judge.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests = append(m.tests, req)
	if err := m.testErrs[req.Problem]; err != nil {
		return nil, err
	}
	if o, ok := m.outcomes[req.Problem]; ok {
		out := *o
		return &out, nil
	}
	return &judge.Outcome{
		Status:    result.Success,
		Testcases: []result.TestcaseResult{{Name: "example_00", Status: result.AC}},
	}, nil
}

// Downloads returns the problem URLs passed to Download, in order.
func (m *Judge) Downloads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.downloads...)
}

// Tests returns the requests passed to Test, in order.
func (m *Judge) Tests() []judge.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]judge.Request(nil), m.tests...)
}
