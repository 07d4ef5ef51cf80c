package versionlabel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Initial is the label of a document's first version.
const Initial = "1.0"

var errMalformed = errors.New("malformed version label")

// Next bumps a version label by a minor step of 0.1, quantized to one
// decimal digit with round-half-even. Labels stay strings end to end so
// "1.0" bumps to exactly "1.1", never "1.0999...". An unparsable or empty
// label is recovered locally by substituting the default base "1.0".
func Next(label string) string {
	tenths, rest, err := parse(label)
	if err != nil {
		tenths, rest = 10, ""
	}

	tenths++

	// Rounding happens after the step so ties resolve against the new
	// tenths digit, matching fixed-point add-then-quantize.
	switch {
	case rest == "":
	case rest[0] > '5' || (rest[0] == '5' && len(rest) > 1):
		tenths++
	case rest[0] == '5' && tenths%2 == 1:
		tenths++
	}

	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// parse reads a non-negative fixed-point label into whole tenths plus the
// leftover fractional digits beyond the first (trailing zeros stripped).
func parse(label string) (int64, string, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0, "", errMalformed
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || whole < 0 || strings.HasPrefix(intPart, "-") {
		return 0, "", errMalformed
	}

	tenths := whole * 10

	if fracPart == "" {
		return tenths, "", nil
	}

	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, "", errMalformed
		}
	}

	tenths += int64(fracPart[0] - '0')

	return tenths, strings.TrimRight(fracPart[1:], "0"), nil
}
