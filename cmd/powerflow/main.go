package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-powerflow/internal/consts"
	"github.com/edp1096/toy-powerflow/pkg/analysis"
	"github.com/edp1096/toy-powerflow/pkg/cases"
	"github.com/edp1096/toy-powerflow/pkg/network"
	"github.com/edp1096/toy-powerflow/pkg/util"
)

const defaultCase = "stagg5"

var (
	verbose   bool
	tolerance float64
	maxIter   int
	jacobian  string
	strict    bool
	output    string
	listCases bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "powerflow [case]",
	Short: "Newton-Raphson AC power flow on a built-in network",
	Long: `Solves the AC power flow of one of the built-in networks and prints
the voltage magnitude and angle of every bus.

Example:
  powerflow stagg5 --jacobian full
  powerflow --list`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          runCase,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every Newton iteration")
	flags.Float64Var(&tolerance, "tol", consts.DefaultTolerance, "convergence threshold on the mismatch norm")
	flags.IntVar(&maxIter, "max-iter", consts.DefaultMaxIterations, "maximum number of Newton iterations")
	flags.StringVar(&jacobian, "jacobian", analysis.FullJacobian.String(), "jacobian formulation: decoupled or full")
	flags.BoolVar(&strict, "strict", false, "fail when the tolerance is not reached")
	flags.StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	flags.BoolVar(&listCases, "list", false, "list the built-in cases and exit")
}

func runCase(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listCases {
		for _, name := range cases.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	name := defaultCase
	if len(args) == 1 {
		name = args[0]
	}
	net, err := cases.Get(name)
	if err != nil {
		return err
	}

	formulation, err := analysis.ParseFormulation(jacobian)
	if err != nil {
		return err
	}
	opts := analysis.DefaultOptions()
	opts.Tolerance = tolerance
	opts.MaxIterations = maxIter
	opts.Jacobian = formulation
	opts.Strict = strict
	opts.Logger = logger

	lf := analysis.NewLoadFlow(opts)
	if err := lf.Setup(net); err != nil {
		return err
	}
	execErr := lf.Execute()

	if r := lf.Result(); r != nil {
		switch strings.ToLower(output) {
		case "yaml":
			if err := printYAML(out, name, net, r); err != nil {
				return err
			}
		case "text":
			printResults(out, net, r)
		default:
			return fmt.Errorf("unknown output format %q", output)
		}
	}

	return execErr
}

type busReport struct {
	Bus  int             `yaml:"bus"`
	Type network.BusType `yaml:"type"`
	Vm   float64         `yaml:"vm"`
	Va   float64         `yaml:"va_deg"`
	P    float64         `yaml:"p"`
	Q    float64         `yaml:"q"`
}

type report struct {
	Case         string          `yaml:"case"`
	Name         string          `yaml:"name"`
	Status       analysis.Status `yaml:"status"`
	Iterations   int             `yaml:"iterations"`
	MismatchNorm float64         `yaml:"mismatch_norm"`
	Buses        []busReport     `yaml:"buses"`
}

func printYAML(w io.Writer, caseName string, net *network.Network, r *analysis.Result) error {
	rep := report{
		Case:         caseName,
		Name:         net.Name,
		Status:       r.Status,
		Iterations:   r.Iterations,
		MismatchNorm: r.MismatchNorm,
	}
	for i, bus := range net.Buses {
		rep.Buses = append(rep.Buses, busReport{
			Bus:  i + 1,
			Type: bus.Type,
			Vm:   r.Vm[i],
			Va:   r.Va[i],
			P:    r.P[i],
			Q:    r.Q[i],
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func printResults(w io.Writer, net *network.Network, r *analysis.Result) {
	fmt.Fprintf(w, "\nLoad Flow Results: %s\n", net.Name)
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "Status: %s after %d iterations (mismatch %.3e)\n\n", r.Status, r.Iterations, r.MismatchNorm)

	fmt.Fprintln(w, "Bus  Type   Voltage                        P             Q")
	fmt.Fprintln(w, "--------------------------------------------------------------------")
	for i, bus := range net.Buses {
		name := fmt.Sprintf("V(%d)", i+1)
		fmt.Fprintf(w, "%3d  %-5s  %s  %-12s  %-12s\n", i+1, bus.Type,
			util.FormatMagnitudePhase(name, r.Vm[i], r.Va[i]),
			util.FormatPerUnit(r.P[i], "pu"),
			util.FormatPerUnit(r.Q[i], "pu"))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
