// Package result holds verification results and the merge law used to combine
// results from incremental and sharded runs.
package result

import (
	"time"
)

// Status is the outcome of one verification.
type Status string

const (
	Success Status = "success"
	Failure Status = "failure"
	Skipped Status = "skipped"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case Success, Failure, Skipped:
		return true
	}
	return false
}

// JudgeStatus is the outcome of one testcase.
type JudgeStatus string

const (
	AC  JudgeStatus = "AC"
	WA  JudgeStatus = "WA"
	RE  JudgeStatus = "RE"
	TLE JudgeStatus = "TLE"
	MLE JudgeStatus = "MLE"
)

// TestcaseResult is the outcome of running a solution on one sample.
type TestcaseResult struct {
	Name    string      `json:"name"`
	Status  JudgeStatus `json:"status"`
	Elapsed float64     `json:"elapsed"`          // seconds
	Memory  *float64    `json:"memory,omitempty"` // MiB
}

// VerificationResult is one execution record of a verification step.
type VerificationResult struct {
	VerificationName  string           `json:"verification_name,omitempty"`
	Status            Status           `json:"status"`
	Elapsed           float64          `json:"elapsed"`
	Slowest           *float64         `json:"slowest,omitempty"`
	Heaviest          *float64         `json:"heaviest,omitempty"`
	Testcases         []TestcaseResult `json:"testcases,omitempty"`
	LastExecutionTime time.Time        `json:"last_execution_time"`
}

// NeedReverifying reports whether the verification must run again for sources
// last changed at base.
func (v VerificationResult) NeedReverifying(base time.Time) bool {
	return v.Status != Success || v.LastExecutionTime.Before(base)
}

// FileResult is the list of verification results of one file.
type FileResult struct {
	Verifications []VerificationResult `json:"verifications"`
	Newest        bool                 `json:"newest"`
}

// NeedVerification reports whether the file must be verified again for sources
// last changed at base.
func (f FileResult) NeedVerification(base time.Time) bool {
	if len(f.Verifications) == 0 {
		return true
	}
	for _, v := range f.Verifications {
		if v.NeedReverifying(base) {
			return true
		}
	}
	return false
}

// IsSuccess reports whether the file passed. With allowSkip, skipped
// verifications do not count against the file.
func (f FileResult) IsSuccess(allowSkip bool) bool {
	for _, v := range f.Verifications {
		if allowSkip {
			if v.Status == Failure {
				return false
			}
		} else if v.Status != Success {
			return false
		}
	}
	return true
}

// HasStatus reports whether any verification has status s.
func (f FileResult) HasStatus(s Status) bool {
	for _, v := range f.Verifications {
		if v.Status == s {
			return true
		}
	}
	return false
}

// Elapsed returns the summed elapsed time of all verifications.
func (f FileResult) Elapsed() float64 {
	var total float64
	for _, v := range f.Verifications {
		total += v.Elapsed
	}
	return total
}

// VerifyCommandResult is the persisted result of one or more verification passes.
type VerifyCommandResult struct {
	TotalSeconds float64               `json:"total_seconds"`
	Files        map[string]FileResult `json:"files"`
}

// New returns an empty result.
func New() *VerifyCommandResult {
	return &VerifyCommandResult{Files: make(map[string]FileResult)}
}

// MarkStale returns a copy of r with every file marked as not newest.
// Results loaded from a previous run are marked stale before they are merged
// with the output of the current pass.
func (r *VerifyCommandResult) MarkStale() *VerifyCommandResult {
	out := &VerifyCommandResult{
		TotalSeconds: r.TotalSeconds,
		Files:        make(map[string]FileResult, len(r.Files)),
	}
	for p, f := range r.Files {
		f.Newest = false
		out.Files[p] = f
	}
	return out
}
