package store

import (
	"fmt"
	"strings"
)

// Location identifies a result document: a local path or an object in an
// S3-compatible bucket. Documents whose name ends in .zst are zstd-compressed.
type Location struct {
	Path   string // local path, empty for objects
	Bucket string
	Key    string
}

// ParseLocation parses a local path or an s3://bucket/key URL.
func ParseLocation(s string) (Location, error) {
	rest, ok := strings.CutPrefix(s, "s3://")
	if !ok {
		if s == "" {
			return Location{}, fmt.Errorf("empty result location")
		}
		return Location{Path: s}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("invalid object location %q: want s3://bucket/key", s)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// IsObject reports whether the location is in a bucket.
func (l Location) IsObject() bool {
	return l.Bucket != ""
}

// Compressed reports whether the document is stored zstd-compressed.
func (l Location) Compressed() bool {
	name := l.Path
	if l.IsObject() {
		name = l.Key
	}
	return strings.HasSuffix(name, ".zst")
}

func (l Location) String() string {
	if l.IsObject() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Path
}
