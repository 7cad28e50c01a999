package analysis

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-powerflow/internal/consts"
)

// Formulation selects how the Jacobian is assembled.
type Formulation int

const (
	// DecoupledJacobian fills only the P-angle and Q-magnitude blocks.
	DecoupledJacobian Formulation = iota
	// FullJacobian uses the exact polar derivatives, all four blocks.
	FullJacobian
)

func (f Formulation) String() string {
	switch f {
	case DecoupledJacobian:
		return "decoupled"
	case FullJacobian:
		return "full"
	default:
		return fmt.Sprintf("Formulation(%d)", int(f))
	}
}

func ParseFormulation(s string) (Formulation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decoupled", "":
		return DecoupledJacobian, nil
	case "full":
		return FullJacobian, nil
	}
	return 0, fmt.Errorf("%w: unknown jacobian formulation %q", ErrInvalidOptions, s)
}

func (f Formulation) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Formulation) UnmarshalText(text []byte) error {
	parsed, err := ParseFormulation(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

type Options struct {
	Tolerance     float64     `yaml:"tolerance"`
	MaxIterations int         `yaml:"max_iterations"`
	Jacobian      Formulation `yaml:"jacobian"`
	// Strict makes Solve return ErrNotConverged together with the last
	// iterate instead of reporting the status only.
	Strict bool `yaml:"strict"`

	Logger *zap.Logger `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{
		Tolerance:     consts.DefaultTolerance,
		MaxIterations: consts.DefaultMaxIterations,
		Jacobian:      DecoupledJacobian,
	}
}

func (o Options) Validate() error {
	if !(o.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidOptions, o.Tolerance)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be at least 1, got %d", ErrInvalidOptions, o.MaxIterations)
	}
	switch o.Jacobian {
	case DecoupledJacobian, FullJacobian:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidOptions, o.Jacobian)
	}
	return nil
}

// ParseOptions decodes a YAML options document on top of DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
