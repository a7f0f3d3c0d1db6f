package status

import (
	"github.com/AndreyAkinshin/verifyhelper/internal/model"
	"github.com/AndreyAkinshin/verifyhelper/internal/resolver"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// Entry is the classification of one file.
type Entry struct {
	Path         string
	Status       Status
	VerifiedWith []string
}

// Report is the classification of every file of an input.
type Report struct {
	Entries []Entry
	Counts  map[Status]int
}

// Build classifies every non-excluded file of in, in sorted path order.
func Build(in *model.Input, results *result.VerifyCommandResult, excluded []string) *Report {
	res := resolver.New(in, excluded)
	report := &Report{Counts: make(map[Status]int)}
	for _, p := range res.Paths() {
		s := Classify(in, res, results, p)
		report.Entries = append(report.Entries, Entry{
			Path:         p,
			Status:       s,
			VerifiedWith: res.VerifiedWith(p),
		})
		report.Counts[s]++
	}
	return report
}

// Failed returns the entries whose status is not a success.
func (r *Report) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if !e.Status.IsSuccess() {
			out = append(out, e)
		}
	}
	return out
}

// IsSuccess reports whether every entry succeeded.
func (r *Report) IsSuccess() bool {
	return len(r.Failed()) == 0
}
