package grasp

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedAxis is matched by errors for passes the sampling policy does not implement.
	ErrUnsupportedAxis = errors.New("unsupported grasp axis")
	// ErrInvalidConfiguration is matched by errors for configurations rejected before sampling.
	ErrInvalidConfiguration = errors.New("invalid grasp configuration")
	// ErrTransformComposition is matched by errors for poses that fail rigidity checks during assembly.
	ErrTransformComposition = errors.New("transform composition failure")
)

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%v: %s", e.kind, e.msg)
	}
	return fmt.Sprintf("%v: %s: %v", e.kind, e.msg, e.cause)
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// NewUnsupportedAxisError is returned when the policy does not implement a pass.
func NewUnsupportedAxisError(pass Pass) error {
	return &kindError{kind: ErrUnsupportedAxis, msg: fmt.Sprintf("%s axis sampling from %s is not implemented", pass.Axis, pass.Direction)}
}

// NewInvalidConfigurationError wraps the reason a configuration at path was rejected.
func NewInvalidConfigurationError(path string, cause error) error {
	return &kindError{kind: ErrInvalidConfiguration, msg: fmt.Sprintf("at %q", path), cause: cause}
}

// NewTransformCompositionError is returned when the named pose fails rigidity checks.
func NewTransformCompositionError(what string, cause error) error {
	return &kindError{kind: ErrTransformComposition, msg: what, cause: cause}
}

func newFieldRequiredError(path, field string) error {
	return errors.Errorf("%q is required in %q", field, path)
}
