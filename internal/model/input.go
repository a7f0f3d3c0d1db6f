// Package model describes what to verify: source files, their dependencies and
// the verification steps attached to test files.
package model

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/graph"
	"github.com/AndreyAkinshin/verifyhelper/internal/schema"
)

// File is one source file. Files without verification steps are library
// files; files with steps are test files.
type File struct {
	Dependencies []string
	Verification []Step
}

// IsTest reports whether the file carries verification steps.
func (f File) IsTest() bool {
	return len(f.Verification) > 0
}

// IsLibrary reports whether the file carries no verification steps.
func (f File) IsLibrary() bool {
	return !f.IsTest()
}

// Input is the immutable set of files to verify. Dependency closures are
// computed on first use and shared by all readers.
type Input struct {
	preCommands []string
	files       map[string]File
	paths       []string

	closureOnce sync.Once
	closures    graph.ClosureTable
	dependents  graph.ClosureTable
}

// NewInput builds an input from files and optional pre-commands. Both are copied.
func NewInput(files map[string]File, preCommands []string) *Input {
	in := &Input{
		files: make(map[string]File, len(files)),
	}
	if preCommands != nil {
		in.preCommands = append([]string{}, preCommands...)
	}
	for p, f := range files {
		in.files[p] = File{
			Dependencies: append([]string(nil), f.Dependencies...),
			Verification: append([]Step(nil), f.Verification...),
		}
		in.paths = append(in.paths, p)
	}
	sort.Strings(in.paths)
	return in
}

type inputJSON struct {
	PreCommand []string        `json:"pre_command,omitempty"`
	Files      map[string]File `json:"files"`
}

// Parse decodes a verification input document after validating it against
// the embedded schema.
func Parse(data []byte) (*Input, error) {
	if err := schema.ValidateVerification(data); err != nil {
		return nil, vherrors.ConfigWrap(err, "invalid verification input")
	}
	var raw inputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, vherrors.ConfigWrap(err, "failed to decode verification input")
	}
	return NewInput(raw.Files, raw.PreCommand), nil
}

// Load reads and parses a verification input file.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &vherrors.Error{
				Kind:    vherrors.KindConfig,
				Message: "verification input not found: " + path,
				Cause:   err,
			}
		}
		return nil, vherrors.ConfigWrap(err, "failed to read verification input")
	}
	in, err := Parse(data)
	if err != nil {
		var e *vherrors.Error
		if errors.As(err, &e) {
			e.Path = path
		}
		return nil, err
	}
	return in, nil
}

// MarshalJSON encodes the input in the document format accepted by Parse.
func (in *Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(inputJSON{PreCommand: in.preCommands, Files: in.files})
}

// PreCommands returns the shell commands to run before verification.
func (in *Input) PreCommands() []string {
	return append([]string(nil), in.preCommands...)
}

// Paths returns every file path in sorted order.
func (in *Input) Paths() []string {
	return append([]string(nil), in.paths...)
}

// TestPaths returns the paths of test files in sorted order.
func (in *Input) TestPaths() []string {
	var out []string
	for _, p := range in.paths {
		if in.files[p].IsTest() {
			out = append(out, p)
		}
	}
	return out
}

// File returns the file at path.
func (in *Input) File(path string) (File, bool) {
	f, ok := in.files[path]
	return f, ok
}

// Len returns the number of files.
func (in *Input) Len() int {
	return len(in.files)
}

// Graph returns the dependency graph of the input.
func (in *Input) Graph() graph.Graph {
	g := make(graph.Graph, len(in.files))
	for p, f := range in.files {
		g[p] = f.Dependencies
	}
	return g
}

func (in *Input) buildClosures() {
	in.closureOnce.Do(func() {
		in.closures = graph.Closures(in.Graph())
		in.dependents = in.closures.Dependents()
	})
}

// Closure returns the sorted transitive dependencies of path, including path
// itself. It returns nil for unknown paths.
func (in *Input) Closure(path string) []string {
	in.buildClosures()
	return in.closures.Of(path)
}

// InClosure reports whether dep is in the dependency closure of path.
func (in *Input) InClosure(path, dep string) bool {
	in.buildClosures()
	set, ok := in.closures[path]
	return ok && set.Contains(dep)
}

// Dependents returns the sorted files whose closure contains path, including
// path itself.
func (in *Input) Dependents(path string) []string {
	in.buildClosures()
	return in.dependents.Of(path)
}
