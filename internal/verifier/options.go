package verifier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
)

// Defaults for verification options.
const (
	DefaultTLE            = 10 * time.Second
	DefaultMLE            = 1024.0 // MiB
	DefaultCommandTimeout = time.Hour
)

// validate is the validator instance for verifier options.
var validate = validator.New()

// SplitState selects one shard of the files that need verification.
type SplitState struct {
	Size  int `validate:"gte=1"`
	Index int `validate:"gte=0,ltfield=Size"`
}

// Selects reports whether the i-th file needing verification belongs to the shard.
func (s *SplitState) Selects(i int) bool {
	if s == nil {
		return true
	}
	return i%s.Size == s.Index
}

// Options configures a verification pass.
type Options struct {
	WorkDir        string        `validate:"required"`
	Timeout        time.Duration `validate:"gte=0"` // global deadline, zero means unlimited
	DefaultTLE     time.Duration `validate:"gt=0"`
	DefaultMLE     float64       `validate:"gt=0"`  // MiB
	CommandTimeout time.Duration `validate:"gte=0"` // limit for compile and command steps, zero means unlimited
	Download       bool
	Split          *SplitState `validate:"omitempty"`
	Env            []string
}

// DefaultOptions returns options with the default limits.
func DefaultOptions(workDir string) Options {
	return Options{
		WorkDir:        workDir,
		DefaultTLE:     DefaultTLE,
		DefaultMLE:     DefaultMLE,
		CommandTimeout: DefaultCommandTimeout,
		Download:       true,
	}
}

// Validate checks the options and returns a configuration error describing
// every invalid field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return vherrors.ConfigWrap(err, "invalid options")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s%s", fieldName(fe.Namespace()), fe.Tag(), param(fe.Param())))
	}
	return &vherrors.Error{
		Kind:    vherrors.KindValidation,
		Message: "invalid options: " + strings.Join(msgs, "; "),
		Cause:   err,
	}
}

func fieldName(ns string) string {
	return strings.TrimPrefix(ns, "Options.")
}

func param(p string) string {
	if p == "" {
		return ""
	}
	return " " + p
}
