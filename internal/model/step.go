package model

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// StepType discriminates verification steps in JSON documents.
type StepType string

const (
	TypeDummy   StepType = "dummy"
	TypeConst   StepType = "const"
	TypeCommand StepType = "command"
	TypeProblem StepType = "problem"
)

// Step is one verification step of a test file. The concrete type is one of
// DummyStep, ConstStep, CommandStep or ProblemStep.
type Step interface {
	Type() StepType
	// Name returns the verification name recorded in results, or "".
	Name() string
	// CompileCommand returns the build command, or "" when the step has none.
	CompileCommand() string
	String() string

	isStep()
}

// DummyStep always succeeds.
type DummyStep struct{}

// ConstStep yields a fixed status without running anything.
type ConstStep struct {
	Status result.Status
}

// CommandStep runs a shell command; exit status zero is success.
type CommandStep struct {
	StepName string
	Command  string
	Compile  string
}

// ProblemStep runs a solution against the samples of an online judge problem.
type ProblemStep struct {
	StepName string
	Command  string
	Compile  string
	Problem  string   // problem URL
	Error    *float64 // absolute/relative tolerance for floating point outputs
	TLE      *float64 // seconds
	MLE      *float64 // MiB
}

func (DummyStep) Type() StepType   { return TypeDummy }
func (ConstStep) Type() StepType   { return TypeConst }
func (CommandStep) Type() StepType { return TypeCommand }
func (ProblemStep) Type() StepType { return TypeProblem }

func (DummyStep) Name() string     { return "" }
func (ConstStep) Name() string     { return "" }
func (s CommandStep) Name() string { return s.StepName }
func (s ProblemStep) Name() string { return s.StepName }

func (DummyStep) CompileCommand() string     { return "" }
func (ConstStep) CompileCommand() string     { return "" }
func (s CommandStep) CompileCommand() string { return s.Compile }
func (s ProblemStep) CompileCommand() string { return s.Compile }

func (DummyStep) isStep()   {}
func (ConstStep) isStep()   {}
func (CommandStep) isStep() {}
func (ProblemStep) isStep() {}

func (DummyStep) String() string { return "dummy" }

func (s ConstStep) String() string { return fmt.Sprintf("const(%s)", s.Status) }

func (s CommandStep) String() string {
	return describe("command", s.StepName, []string{"command=" + s.Command}, s.Compile)
}

func (s ProblemStep) String() string {
	fields := []string{"problem=" + s.Problem, "command=" + s.Command}
	if s.Error != nil {
		fields = append(fields, fmt.Sprintf("error=%g", *s.Error))
	}
	if s.TLE != nil {
		fields = append(fields, fmt.Sprintf("tle=%g", *s.TLE))
	}
	if s.MLE != nil {
		fields = append(fields, fmt.Sprintf("mle=%g", *s.MLE))
	}
	return describe("problem", s.StepName, fields, s.Compile)
}

func describe(kind, name string, fields []string, compile string) string {
	if name != "" {
		fields = append([]string{"name=" + name}, fields...)
	}
	if compile != "" {
		fields = append(fields, "compile="+compile)
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(fields, ", "))
}

// HasProblem reports whether any step needs problem samples.
func HasProblem(steps []Step) bool {
	for _, s := range steps {
		if _, ok := s.(ProblemStep); ok {
			return true
		}
	}
	return false
}
