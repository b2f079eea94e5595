// Package dataset loads numeric training examples from flat text files and
// prepares them for online training.
//
// File format, one example per line:
//
//	# comment
//	0.5, 1.2, 3.0, 1
//	0.1  0.0  2.5  0
//
// Values are separated by commas and/or whitespace. Blank lines and lines
// starting with '#' are skipped. The last column is the target: either a
// regression value or, with Options.Classes > 0, an integer class label that
// is expanded to a one-hot vector.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Common errors.
var (
	ErrEmpty      = errors.New("dataset has no examples")
	ErrRaggedRow  = errors.New("row has a different number of columns")
	ErrLabel      = errors.New("invalid class label")
	ErrTooFewCols = errors.New("row needs at least one feature and a target")
)

// Example is one training tuple.
type Example struct {
	Input  []float64
	Target []float64
}

// Set is an ordered collection of examples sharing one shape.
type Set struct {
	Examples []Example
	Features int // len(Input) of every example
	Outputs  int // len(Target) of every example
}

// Options controls parsing.
type Options struct {
	// Classes expands the last column into a one-hot vector of this length.
	// Zero keeps it as a single regression target.
	Classes int
}

// Load opens path and parses it with Parse.
func Load(path string, opts Options) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	set, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse reads examples from r.
func Parse(r io.Reader, opts Options) (*Set, error) {
	set := &Set{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		row, err := parseRow(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: %w", line, ErrTooFewCols)
		}

		features := len(row) - 1
		if len(set.Examples) == 0 {
			set.Features = features
		} else if features != set.Features {
			return nil, fmt.Errorf("line %d: %w: want %d, got %d",
				line, ErrRaggedRow, set.Features+1, len(row))
		}

		target, err := makeTarget(row[features], opts.Classes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set.Outputs = len(target)
		set.Examples = append(set.Examples, Example{Input: row[:features:features], Target: target})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(set.Examples) == 0 {
		return nil, ErrEmpty
	}
	return set, nil
}

func parseRow(text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		row[i] = v
	}
	return row, nil
}

func makeTarget(v float64, classes int) ([]float64, error) {
	if classes <= 0 {
		return []float64{v}, nil
	}

	label := int(v)
	if float64(label) != v || math.IsNaN(v) || label < 0 || label >= classes {
		return nil, fmt.Errorf("%w: %g not in [0, %d)", ErrLabel, v, classes)
	}
	oneHot := make([]float64, classes)
	oneHot[label] = 1
	return oneHot, nil
}

// Len returns the number of examples.
func (s *Set) Len() int {
	return len(s.Examples)
}

// Shuffle permutes the examples in place.
func (s *Set) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.Examples), func(i, j int) {
		s.Examples[i], s.Examples[j] = s.Examples[j], s.Examples[i]
	})
}

// Split returns the first frac of the examples and the rest as two sets
// sharing the underlying examples. frac is clamped to [0, 1].
func (s *Set) Split(frac float64) (head, tail *Set) {
	frac = math.Max(0, math.Min(1, frac))
	n := int(math.Round(frac * float64(len(s.Examples))))

	head = &Set{Examples: s.Examples[:n:n], Features: s.Features, Outputs: s.Outputs}
	tail = &Set{Examples: s.Examples[n:], Features: s.Features, Outputs: s.Outputs}
	return head, tail
}
