// Command logm evaluates matrix logarithms, exponentials and rotation
// geodesics over YAML documents.
//
//	logm log --method schur rotation.yaml
//	logm distance pair.yaml
//	logm batch --workers 8 jobs.yaml
//
// A document is a mapping with `n` and row-major `data` (or `a`/`b` for
// the two-matrix operations). JSON input is accepted since it is valid YAML.
package main

import (
	"fmt"
	"os"
)

const version = "v0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
