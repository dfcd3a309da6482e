package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is one input record. Single-matrix operations read Data; the
// geodesic operations read A and B. Op and T are only consulted by batch
// and interp respectively.
type document struct {
	Op   string    `yaml:"op,omitempty"`
	N    int       `yaml:"n"`
	Data []float64 `yaml:"data,omitempty,flow"`
	A    []float64 `yaml:"a,omitempty,flow"`
	B    []float64 `yaml:"b,omitempty,flow"`
	T    *float64  `yaml:"t,omitempty"`
}

// result is one output record. Logarithms are written as interleaved
// (re, im) pairs, everything else as plain reals.
type result struct {
	Op       string    `yaml:"op"`
	N        int       `yaml:"n,omitempty"`
	Complex  bool      `yaml:"complex,omitempty"`
	Data     []float64 `yaml:"data,omitempty,flow"`
	Distance *float64  `yaml:"distance,omitempty"`
	Error    string    `yaml:"error,omitempty"`
}

// openInput returns stdin for no argument or "-", otherwise the named file.
func openInput(stdin io.Reader, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}

	return f, nil
}

// readDocuments decodes every document of a YAML stream.
func readDocuments(r io.Reader) ([]document, error) {
	dec := yaml.NewDecoder(r)
	var docs []document
	for {
		var d document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs), err)
		}
		docs = append(docs, d)
	}

	return docs, nil
}

// readDocument decodes exactly one document.
func readDocument(r io.Reader) (document, error) {
	docs, err := readDocuments(r)
	if err != nil {
		return document{}, err
	}
	if len(docs) != 1 {
		return document{}, fmt.Errorf("expected one document, got %d", len(docs))
	}

	return docs[0], nil
}

// writeResults encodes rs as a YAML stream, one document per result.
func writeResults(w io.Writer, rs ...result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range rs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}

	return enc.Close()
}
