package result

// Equal reports whether v and o describe the same execution. Timestamps are
// compared as instants with the same UTC offset.
func (v VerificationResult) Equal(o VerificationResult) bool {
	if v.VerificationName != o.VerificationName ||
		v.Status != o.Status ||
		v.Elapsed != o.Elapsed ||
		!equalFloatPtr(v.Slowest, o.Slowest) ||
		!equalFloatPtr(v.Heaviest, o.Heaviest) {
		return false
	}
	if !v.LastExecutionTime.Equal(o.LastExecutionTime) {
		return false
	}
	_, vOffset := v.LastExecutionTime.Zone()
	_, oOffset := o.LastExecutionTime.Zone()
	if vOffset != oOffset {
		return false
	}
	if len(v.Testcases) != len(o.Testcases) {
		return false
	}
	for i := range v.Testcases {
		a, b := v.Testcases[i], o.Testcases[i]
		if a.Name != b.Name || a.Status != b.Status || a.Elapsed != b.Elapsed || !equalFloatPtr(a.Memory, b.Memory) {
			return false
		}
	}
	return true
}

// Equal reports whether f and o hold equal verifications and the same newest flag.
func (f FileResult) Equal(o FileResult) bool {
	if f.Newest != o.Newest || len(f.Verifications) != len(o.Verifications) {
		return false
	}
	for i := range f.Verifications {
		if !f.Verifications[i].Equal(o.Verifications[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether r and o are semantically equal.
func (r *VerifyCommandResult) Equal(o *VerifyCommandResult) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.TotalSeconds != o.TotalSeconds {
		return false
	}
	return r.EqualFiles(o)
}

// EqualFiles compares the per-file results only, ignoring total_seconds.
func (r *VerifyCommandResult) EqualFiles(o *VerifyCommandResult) bool {
	if len(r.Files) != len(o.Files) {
		return false
	}
	for p, f := range r.Files {
		g, ok := o.Files[p]
		if !ok || !f.Equal(g) {
			return false
		}
	}
	return true
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
