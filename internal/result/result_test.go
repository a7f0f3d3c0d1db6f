package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func vr(status Status, at time.Time) VerificationResult {
	return VerificationResult{Status: status, Elapsed: 1, LastExecutionTime: at}
}

func TestVerificationResult_NeedReverifying(t *testing.T) {
	tests := []struct {
		name string
		v    VerificationResult
		want bool
	}{
		{"success after base", vr(Success, base.Add(time.Hour)), false},
		{"success at base", vr(Success, base), false},
		{"success before base", vr(Success, base.Add(-time.Second)), true},
		{"failure after base", vr(Failure, base.Add(time.Hour)), true},
		{"skipped after base", vr(Skipped, base.Add(time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.NeedReverifying(base))
		})
	}
}

func TestFileResult_NeedVerification(t *testing.T) {
	later := base.Add(time.Hour)
	earlier := base.Add(-time.Hour)

	tests := []struct {
		name string
		f    FileResult
		want bool
	}{
		{"empty", FileResult{}, true},
		{"all fresh successes", FileResult{Verifications: []VerificationResult{vr(Success, later), vr(Success, later)}}, false},
		{"one stale", FileResult{Verifications: []VerificationResult{vr(Success, later), vr(Success, earlier)}}, true},
		{"one failure", FileResult{Verifications: []VerificationResult{vr(Success, later), vr(Failure, later)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.NeedVerification(base))
		})
	}
}

func TestFileResult_Staleness(t *testing.T) {
	commit := base
	f := FileResult{Verifications: []VerificationResult{vr(Success, commit.Add(-time.Minute))}}
	assert.True(t, f.NeedVerification(commit), "verified before the last commit")

	f = FileResult{Verifications: []VerificationResult{vr(Success, commit.Add(time.Minute))}}
	assert.False(t, f.NeedVerification(commit), "verified after the last commit")
}

func TestFileResult_IsSuccess(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []Status
		allowSkip bool
		want      bool
	}{
		{"empty strict", nil, false, true},
		{"all success strict", []Status{Success, Success}, false, true},
		{"skip strict", []Status{Success, Skipped}, false, false},
		{"skip allowed", []Status{Success, Skipped}, true, true},
		{"failure allowed skip", []Status{Skipped, Failure}, true, false},
		{"failure strict", []Status{Failure}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FileResult
			for _, s := range tt.statuses {
				f.Verifications = append(f.Verifications, vr(s, base))
			}
			assert.Equal(t, tt.want, f.IsSuccess(tt.allowSkip))
		})
	}
}

func TestFileResult_Elapsed(t *testing.T) {
	f := FileResult{Verifications: []VerificationResult{
		{Status: Success, Elapsed: 1.5},
		{Status: Failure, Elapsed: 2.25},
	}}
	assert.InDelta(t, 3.75, f.Elapsed(), 1e-9)
	assert.True(t, f.HasStatus(Failure))
	assert.False(t, f.HasStatus(Skipped))
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, Success.Valid())
	assert.True(t, Failure.Valid())
	assert.True(t, Skipped.Valid())
	assert.False(t, Status("AC").Valid())
	assert.False(t, Status("").Valid())
}

func TestVerifyCommandResult_MarkStale(t *testing.T) {
	r := &VerifyCommandResult{
		TotalSeconds: 3,
		Files: map[string]FileResult{
			"a": {Newest: true, Verifications: []VerificationResult{vr(Success, base)}},
			"b": {Newest: false},
		},
	}

	stale := r.MarkStale()
	assert.False(t, stale.Files["a"].Newest)
	assert.False(t, stale.Files["b"].Newest)
	assert.Equal(t, 3.0, stale.TotalSeconds)
	assert.True(t, r.Files["a"].Newest, "original must not be modified")
}
