// Package odometer turns the lines-of-code counter into the digits shown by
// the rolling counter widget.
package odometer

import (
	"strconv"
	"strings"
)

// Width is the minimum number of digits displayed.
const Width = 6

// Digits returns value as decimal digits, zero-padded on the left to Width.
// Negative values are shown as zero; wider values are not truncated.
func Digits(value int) []int {
	if value < 0 {
		value = 0
	}

	s := strconv.Itoa(value)
	if pad := Width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}

	digits := make([]int, len(s))
	for i, r := range s {
		digits[i] = int(r - '0')
	}
	return digits
}

// String renders the padded digits.
func String(value int) string {
	var b strings.Builder
	for _, d := range Digits(value) {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}
