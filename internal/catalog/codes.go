package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstCode is assigned when the catalog is empty.
const FirstCode = "P001"

const codePrefix = "P"

// ParseCode extracts the numeric sequence from a product code like "P007".
// Codes are matched case-insensitively.
func ParseCode(code string) (int, error) {
	trimmed := strings.TrimSpace(code)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, codePrefix) || len(upper) < 2 {
		return 0, fmt.Errorf("malformed product code %q", code)
	}
	n, err := strconv.Atoi(upper[len(codePrefix):])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed product code %q", code)
	}
	return n, nil
}

// FormatCode renders a sequence number as a zero-padded product code.
func FormatCode(seq int) string {
	return fmt.Sprintf("%s%03d", codePrefix, seq)
}

// NextCodeAfter computes the successor of the highest-inserted code.
// An empty last code means an empty catalog and yields FirstCode.
// A malformed stored code is an error: silently restarting the sequence
// could collide with surviving rows.
func NextCodeAfter(lastCode string) (string, error) {
	if strings.TrimSpace(lastCode) == "" {
		return FirstCode, nil
	}
	seq, err := ParseCode(lastCode)
	if err != nil {
		return "", err
	}
	return FormatCode(seq + 1), nil
}

// NormalizeCode uppercases and trims a user-supplied code for lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
