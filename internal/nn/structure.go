package nn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseStructure parses a layer size list such as "2, 3, 1" or "2 3 1".
//
// Sizes are separated by commas and/or whitespace. The result is validated
// with ValidateStructure.
func ParseStructure(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	structure := make([]int, 0, len(fields))
	for _, f := range fields {
		size, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a layer size", ErrInvalidStructure, f)
		}
		structure = append(structure, size)
	}

	if err := ValidateStructure(structure); err != nil {
		return nil, err
	}
	return structure, nil
}
