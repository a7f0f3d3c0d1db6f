package result

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/schema"
)

// Timestamps without a UTC offset are read as UTC.
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts RFC 3339 timestamps and, for older result files,
// timestamps without an offset.
func (v *VerificationResult) UnmarshalJSON(data []byte) error {
	type alias VerificationResult
	var raw struct {
		alias
		LastExecutionTime string `json:"last_execution_time"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := parseTimestamp(raw.LastExecutionTime)
	if err != nil {
		return err
	}
	*v = VerificationResult(raw.alias)
	v.LastExecutionTime = ts
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid last_execution_time %q", s)
}

// UnmarshalJSON treats a missing newest flag as true.
func (f *FileResult) UnmarshalJSON(data []byte) error {
	type alias FileResult
	raw := alias{Newest: true}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FileResult(raw)
	return nil
}

// MarshalJSON always emits the verifications list, even when empty.
func (f FileResult) MarshalJSON() ([]byte, error) {
	type alias FileResult
	a := alias(f)
	if a.Verifications == nil {
		a.Verifications = []VerificationResult{}
	}
	return json.Marshal(a)
}

// Marshal serializes r as indented JSON. Optional fields that are unset are omitted.
func Marshal(r *VerifyCommandResult) ([]byte, error) {
	doc := r
	if doc.Files == nil {
		doc = &VerifyCommandResult{TotalSeconds: r.TotalSeconds, Files: map[string]FileResult{}}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse decodes a result document after validating it against the result schema.
//
// File paths are normalized to slash-separated paths relative to root. Entries
// that do not resolve inside root are dropped and reported through logger.
// Entries that normalize to the same path are combined like Merge, in sorted
// key order, and reported as well.
// An empty root only cleans the paths.
func Parse(data []byte, root string, logger *zap.Logger) (*VerifyCommandResult, error) {
	if err := schema.ValidateResult(data); err != nil {
		return nil, errors.ConfigWrap(err, "invalid result document")
	}

	var raw VerifyCommandResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.ConfigWrap(err, "failed to decode result document")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := make([]string, 0, len(raw.Files))
	for k := range raw.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &VerifyCommandResult{
		TotalSeconds: raw.TotalSeconds,
		Files:        make(map[string]FileResult, len(raw.Files)),
	}
	for _, k := range keys {
		rel, ok := NormalizePath(root, k)
		if !ok {
			logger.Warn("dropping result entry outside of the repository",
				zap.String("path", k),
				zap.String("root", root),
			)
			continue
		}
		fr := raw.Files[k]
		if existing, ok := out.Files[rel]; ok {
			logger.Warn("duplicate result entries for the same file",
				zap.String("path", rel),
				zap.String("key", k),
			)
			if existing.Newest && !fr.Newest {
				continue
			}
		}
		out.Files[rel] = fr
	}
	return out, nil
}

// NormalizePath converts p to a slash-separated path relative to root.
// It reports false when p lies outside root.
func NormalizePath(root, p string) (string, bool) {
	if p == "" {
		return "", false
	}
	if root == "" {
		clean := path.Clean(filepath.ToSlash(p))
		if strings.HasPrefix(clean, "../") || clean == ".." || path.IsAbs(clean) {
			return "", false
		}
		return clean, true
	}

	native := filepath.FromSlash(p)
	if !filepath.IsAbs(native) {
		native = filepath.Join(root, native)
	}
	rel, err := filepath.Rel(root, native)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
