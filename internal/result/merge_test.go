package result

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileResult(newest bool, elapsed float64) FileResult {
	return FileResult{
		Newest:        newest,
		Verifications: []VerificationResult{{Status: Success, Elapsed: elapsed, LastExecutionTime: base}},
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		a, b      FileResult
		hasA      bool
		wantFromB bool
	}{
		{"absent in a", FileResult{}, fileResult(false, 2), false, true},
		{"b newest over a newest", fileResult(true, 1), fileResult(true, 2), true, true},
		{"b newest over a stale", fileResult(false, 1), fileResult(true, 2), true, true},
		{"b stale over a stale", fileResult(false, 1), fileResult(false, 2), true, true},
		{"b stale under a newest", fileResult(true, 1), fileResult(false, 2), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &VerifyCommandResult{TotalSeconds: 1, Files: map[string]FileResult{}}
			if tt.hasA {
				a.Files["p"] = tt.a
			}
			b := &VerifyCommandResult{TotalSeconds: 2, Files: map[string]FileResult{"p": tt.b}}

			got := Merge(a, b)
			assert.Equal(t, 3.0, got.TotalSeconds)
			want := tt.a
			if tt.wantFromB {
				want = tt.b
			}
			assert.True(t, got.Files["p"].Equal(want), "got %+v, want %+v", got.Files["p"], want)
		})
	}
}

func TestMerge_KeepsFilesOfBothSides(t *testing.T) {
	a := &VerifyCommandResult{Files: map[string]FileResult{"x": fileResult(true, 1)}}
	b := &VerifyCommandResult{Files: map[string]FileResult{"y": fileResult(false, 2)}}

	got := Merge(a, b)
	assert.Len(t, got.Files, 2)
	assert.Len(t, a.Files, 1, "operands must not be modified")
	assert.Len(t, b.Files, 1, "operands must not be modified")
}

func TestMerge_NotCommutative(t *testing.T) {
	a := &VerifyCommandResult{Files: map[string]FileResult{"p": fileResult(true, 1)}}
	b := &VerifyCommandResult{Files: map[string]FileResult{"p": fileResult(true, 2)}}

	ab := Merge(a, b)
	ba := Merge(b, a)
	assert.Equal(t, 2.0, ab.Files["p"].Verifications[0].Elapsed)
	assert.Equal(t, 1.0, ba.Files["p"].Verifications[0].Elapsed)
	assert.False(t, ab.Equal(ba))
}

func TestMergeAll(t *testing.T) {
	assert.Empty(t, MergeAll().Files)

	r1 := &VerifyCommandResult{TotalSeconds: 1, Files: map[string]FileResult{"p": fileResult(false, 1), "q": fileResult(true, 1)}}
	r2 := &VerifyCommandResult{TotalSeconds: 2, Files: map[string]FileResult{"p": fileResult(true, 2)}}
	r3 := &VerifyCommandResult{TotalSeconds: 4, Files: map[string]FileResult{"p": fileResult(false, 3), "q": fileResult(true, 3)}}

	got := MergeAll(r1, nil, r2, r3)
	want := Merge(Merge(r1, r2), r3)
	assert.True(t, got.Equal(want))
	assert.Equal(t, 7.0, got.TotalSeconds)
	assert.Equal(t, 2.0, got.Files["p"].Verifications[0].Elapsed)
	assert.Equal(t, 3.0, got.Files["q"].Verifications[0].Elapsed)

	again := MergeAll(r1, nil, r2, r3)
	assert.True(t, got.Equal(again), "left fold must be reproducible")
}

// The precedence rule only looks at the newest flags of the accumulator and the
// incoming entry, so regrouping a sequence does not change the chosen files.
// Only the order of the operands matters.
func TestMerge_GroupingOfFiles(t *testing.T) {
	type entry struct {
		present bool
		newest  bool
	}
	options := []entry{{false, false}, {true, false}, {true, true}}

	build := func(e entry, elapsed float64) *VerifyCommandResult {
		r := &VerifyCommandResult{TotalSeconds: elapsed, Files: map[string]FileResult{}}
		if e.present {
			r.Files["p"] = fileResult(e.newest, elapsed)
		}
		return r
	}

	for _, x := range options {
		for _, y := range options {
			for _, z := range options {
				name := fmt.Sprintf("%v/%v/%v", x, y, z)
				t.Run(name, func(t *testing.T) {
					a, b, c := build(x, 1), build(y, 2), build(z, 4)
					left := Merge(Merge(a, b), c)
					right := Merge(a, Merge(b, c))
					require.True(t, left.EqualFiles(right))
					assert.Equal(t, left.TotalSeconds, right.TotalSeconds)
				})
			}
		}
	}
}
