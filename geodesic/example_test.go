package geodesic_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/geodesic"
	"github.com/katalvlaran/logm/logm"
)

// ExampleDistance measures a quarter turn about z: √2·π/2.
func ExampleDistance() {
	id := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	quarter := mat.NewDense(3, 3, []float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	})

	lg, _ := logm.NewLogarithm(logm.MethodSchur)
	d, err := geodesic.Distance(id, quarter, lg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("distance = %.4f\n", d)
	// Output:
	// distance = 2.2214
}

// ExamplePath walks from the identity to a 60° turn about z in three steps
// and prints the turning angle of each sample.
func ExamplePath() {
	id := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	c, s := math.Cos(math.Pi/3), math.Sin(math.Pi/3)
	end := mat.NewDense(2, 2, []float64{c, -s, s, c})

	path, err := geodesic.Path(id, end, 3, nil, logm.ExpPade)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range path {
		deg := math.Atan2(p.At(1, 0), p.At(0, 0)) * 180 / math.Pi
		fmt.Printf("%.1f°\n", deg)
	}
	// Output:
	// 0.0°
	// 20.0°
	// 40.0°
	// 60.0°
}
