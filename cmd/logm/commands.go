package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/num/quat"
)

const (
	opLog      = "log"
	opExp      = "exp"
	opDistance = "distance"
	opInterp   = "interp"
)

// evaluate runs one document through the kernel. Failures are reported in
// the result, never returned, so batch output stays aligned with its input.
func (a *app) evaluate(op string, d document) result {
	res := result{Op: op}
	var err error
	switch op {
	case opLog:
		res.N, res.Complex = d.N, true
		res.Data, err = a.ops.log(d.Data, d.N)
	case opExp:
		res.N = d.N
		res.Data, err = a.ops.expm(d.Data, d.N)
	case opDistance:
		var dist float64
		if dist, err = a.ops.distance(d.A, d.B, d.N); err == nil {
			res.Distance = &dist
		}
	case opInterp:
		t := 0.5
		if d.T != nil {
			t = *d.T
		}
		res.N = d.N
		res.Data, err = a.ops.interp(d.A, d.B, t, d.N)
	default:
		err = fmt.Errorf("unknown op %q", op)
	}
	if err != nil {
		res.N, res.Complex, res.Data, res.Distance = 0, false, nil, nil
		res.Error = err.Error()
	}

	return res
}

// runSingle reads one document, evaluates op and writes the result.
func (a *app) runSingle(cmd *cobra.Command, args []string, op string, tweak func(*document)) error {
	in, err := openInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	defer in.Close()

	d, err := readDocument(in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tweak != nil {
		tweak(&d)
	}

	a.log.Debug().Str("op", op).Int("n", d.N).Msg("evaluating")
	res := a.evaluate(op, d)
	if res.Error != "" {
		return fmt.Errorf("%s: %s", op, res.Error)
	}

	return writeResults(cmd.OutOrStdout(), res)
}

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log [file]",
		Short: "Principal matrix logarithm of one document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSingle(cmd, args, opLog, nil)
		},
	}
}

func newExpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exp [file]",
		Short: "Matrix exponential of one real document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSingle(cmd, args, opExp, nil)
		},
	}
}

func newDistanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distance [file]",
		Short: "Geodesic distance ‖log(Aᵀ·B)‖_F between rotations a and b",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSingle(cmd, args, opDistance, nil)
		},
	}
}

func newInterpCmd(a *app) *cobra.Command {
	var t float64
	cmd := &cobra.Command{
		Use:   "interp [file]",
		Short: "Point at parameter t on the geodesic from a to b",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tweak func(*document)
			if cmd.Flags().Changed("t") {
				tweak = func(d *document) { d.T = &t }
			}

			return a.runSingle(cmd, args, opInterp, tweak)
		},
	}
	cmd.Flags().Float64Var(&t, "t", 0.5, "Geodesic parameter; overrides the document's t")

	return cmd
}

func newRotationCmd(a *app) *cobra.Command {
	var (
		axis    []float64
		angle   float64
		degrees bool
	)
	cmd := &cobra.Command{
		Use:   "rotation",
		Short: "Emit the 3×3 rotation about an axis as a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if degrees {
				angle *= math.Pi / 180
			}
			data, err := axisAngle(axis, angle)
			if err != nil {
				return err
			}
			a.log.Debug().Floats64("axis", axis).Float64("angle", angle).Msg("rotation")

			return writeResults(cmd.OutOrStdout(), result{Op: "rotation", N: 3, Data: data})
		},
	}
	cmd.Flags().Float64SliceVar(&axis, "axis", []float64{0, 0, 1}, "Rotation axis x,y,z")
	cmd.Flags().Float64Var(&angle, "angle", 0, "Rotation angle (radians unless --degrees)")
	cmd.Flags().BoolVar(&degrees, "degrees", false, "Interpret --angle in degrees")

	return cmd
}

// axisAngle builds the row-major rotation matrix from a unit quaternion.
func axisAngle(axis []float64, angle float64) ([]float64, error) {
	if len(axis) != 3 {
		return nil, fmt.Errorf("--axis: want 3 components, got %d", len(axis))
	}
	v := quat.Number{Imag: axis[0], Jmag: axis[1], Kmag: axis[2]}
	norm := quat.Abs(v)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("--axis: must be a finite non-zero vector")
	}
	q := quat.Add(
		quat.Number{Real: math.Cos(angle / 2)},
		quat.Scale(math.Sin(angle/2)/norm, v),
	)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	return []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}, nil
}
