package result

// Merge combines two results. Files of b replace files of a when the file of b
// is newest, when a has no entry for the path, or when the entry of a is not
// newest. When both entries are newest, b wins: callers merge left to right so
// that later results supersede earlier ones.
//
// Merge is not commutative. Neither operand is modified.
func Merge(a, b *VerifyCommandResult) *VerifyCommandResult {
	out := &VerifyCommandResult{
		TotalSeconds: a.TotalSeconds + b.TotalSeconds,
		Files:        make(map[string]FileResult, len(a.Files)+len(b.Files)),
	}
	for p, f := range a.Files {
		out.Files[p] = f
	}
	for p, fb := range b.Files {
		existing, ok := out.Files[p]
		if fb.Newest || !ok || !existing.Newest {
			out.Files[p] = fb
		}
	}
	return out
}

// MergeAll folds results from left to right. It returns an empty result when
// called without arguments.
func MergeAll(results ...*VerifyCommandResult) *VerifyCommandResult {
	acc := New()
	for _, r := range results {
		if r == nil {
			continue
		}
		acc = Merge(acc, r)
	}
	return acc
}
