// Package rut validates Chilean RUT identifiers using the modulo-11
// check-digit algorithm and canonicalizes them to the "XXXXXXXX-D" form.
package rut

import "strings"

const minLength = 8

// Result carries the outcome of a validation. When Valid is true, Formatted
// holds the canonical "body-DV" form; otherwise it echoes the raw input.
type Result struct {
	Valid     bool
	Formatted string
}

// Validate checks raw against the modulo-11 algorithm. It never fails hard:
// malformed input yields {Valid: false, Formatted: raw}.
func Validate(raw string) Result {
	clean := normalize(raw)
	if len(clean) < minLength {
		return Result{Valid: false, Formatted: raw}
	}

	body := clean[:len(clean)-1]
	dv := clean[len(clean)-1]

	if dv != expectedDigit(body) {
		return Result{Valid: false, Formatted: raw}
	}
	return Result{Valid: true, Formatted: body + "-" + string(dv)}
}

// normalize strips everything but decimal digits and the check letter K,
// uppercasing as it goes.
func normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// expectedDigit computes the check symbol for body: weighted sum from the
// least-significant digit with multipliers cycling 2..7, then 11-(sum%11)
// mapped to '0' for 11 and 'K' for 10.
func expectedDigit(body string) byte {
	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		if body[i] == 'K' {
			// K is only valid as the final check symbol.
			return 0
		}
		sum += int(body[i]-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}

	switch expected := 11 - (sum % 11); expected {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + expected)
	}
}
