package model

import (
	"encoding/json"
	"fmt"

	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// stepJSON is the wire form shared by all step variants.
type stepJSON struct {
	Type    StepType `json:"type"`
	Name    *string  `json:"name,omitempty"`
	Command string   `json:"command,omitempty"`
	Compile *string  `json:"compile,omitempty"`
	Problem string   `json:"problem,omitempty"`
	Error   *float64 `json:"error,omitempty"`
	TLE     *float64 `json:"tle,omitempty"`
	MLE     *float64 `json:"mle,omitempty"`
	Status  string   `json:"status,omitempty"`
}

func decodeStep(raw stepJSON) (Step, error) {
	switch raw.Type {
	case TypeDummy:
		return DummyStep{}, nil
	case TypeConst:
		status := result.Status(raw.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("const step: invalid status %q", raw.Status)
		}
		return ConstStep{Status: status}, nil
	case TypeCommand:
		if raw.Command == "" {
			return nil, fmt.Errorf("command step: command is required")
		}
		return CommandStep{
			StepName: deref(raw.Name),
			Command:  raw.Command,
			Compile:  deref(raw.Compile),
		}, nil
	case TypeProblem:
		if raw.Command == "" || raw.Problem == "" {
			return nil, fmt.Errorf("problem step: command and problem are required")
		}
		return ProblemStep{
			StepName: deref(raw.Name),
			Command:  raw.Command,
			Compile:  deref(raw.Compile),
			Problem:  raw.Problem,
			Error:    raw.Error,
			TLE:      raw.TLE,
			MLE:      raw.MLE,
		}, nil
	default:
		return nil, fmt.Errorf("unknown verification type %q", raw.Type)
	}
}

func encodeStep(s Step) (stepJSON, error) {
	switch s := s.(type) {
	case DummyStep:
		return stepJSON{Type: TypeDummy}, nil
	case ConstStep:
		return stepJSON{Type: TypeConst, Status: string(s.Status)}, nil
	case CommandStep:
		return stepJSON{
			Type:    TypeCommand,
			Name:    ref(s.StepName),
			Command: s.Command,
			Compile: ref(s.Compile),
		}, nil
	case ProblemStep:
		return stepJSON{
			Type:    TypeProblem,
			Name:    ref(s.StepName),
			Command: s.Command,
			Compile: ref(s.Compile),
			Problem: s.Problem,
			Error:   s.Error,
			TLE:     s.TLE,
			MLE:     s.MLE,
		}, nil
	default:
		return stepJSON{}, fmt.Errorf("unsupported verification step %T", s)
	}
}

type fileJSON struct {
	Dependencies []string   `json:"dependencies"`
	Verification []stepJSON `json:"verification"`
}

// UnmarshalJSON decodes a file entry and its typed verification steps.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw fileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := File{Dependencies: raw.Dependencies}
	for i, rs := range raw.Verification {
		step, err := decodeStep(rs)
		if err != nil {
			return fmt.Errorf("verification[%d]: %w", i, err)
		}
		out.Verification = append(out.Verification, step)
	}
	*f = out
	return nil
}

// MarshalJSON encodes a file entry with a type tag on every step.
func (f File) MarshalJSON() ([]byte, error) {
	raw := fileJSON{
		Dependencies: f.Dependencies,
		Verification: make([]stepJSON, 0, len(f.Verification)),
	}
	if raw.Dependencies == nil {
		raw.Dependencies = []string{}
	}
	for _, s := range f.Verification {
		enc, err := encodeStep(s)
		if err != nil {
			return nil, err
		}
		raw.Verification = append(raw.Verification, enc)
	}
	return json.Marshal(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
