package coerce

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const strconvIntSize = strconv.IntSize

// Coerce converts raw cell text to a value of the given kind.
// The concrete type of the result follows the kind: string, int, int8,
// int16, int32, int64, uint8, float32, float64, decimal.Decimal, bool,
// time.Time or uuid.UUID. Blank text or text that does not parse yields
// false; Coerce never panics on bad input.
func Coerce(raw string, kind Kind, c Culture) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	v, ok := coerce(raw, s, kind, c.withDefaults())
	if !ok {
		return nil, false
	}
	return v, true
}

func coerce(raw, s string, kind Kind, c Culture) (any, bool) {
	switch kind {
	case KindString:
		// already text; keep it as decoded
		return raw, true
	case KindInt:
		n, ok := parseInteger(s, kind, c)
		return int(n), ok
	case KindInt8:
		n, ok := parseInteger(s, kind, c)
		return int8(n), ok
	case KindInt16:
		n, ok := parseInteger(s, kind, c)
		return int16(n), ok
	case KindInt32:
		n, ok := parseInteger(s, kind, c)
		return int32(n), ok
	case KindInt64:
		return parseInteger(s, kind, c)
	case KindUint8:
		n, ok := parseInteger(s, kind, c)
		return uint8(n), ok
	case KindFloat32:
		f, ok := parseFloat(s, 32, c)
		return float32(f), ok
	case KindFloat64:
		return parseFloat(s, 64, c)
	case KindDecimal:
		return parseDecimal(s, c)
	case KindBool:
		return parseBool(s)
	case KindTime:
		return parseTime(s, c)
	case KindUUID:
		return parseUUID(s)
	}
	return nil, false
}

// parseInteger parses s as an integer of the kind's width, falling back to
// a float truncated toward zero. Values outside the width are rejected.
func parseInteger(s string, kind Kind, c Culture) (int64, bool) {
	num, ok := normalizeNumber(s, c)
	if !ok {
		return 0, false
	}
	bits := kind.bits()

	if kind == KindUint8 {
		n, err := strconv.ParseUint(num, 10, bits)
		if err == nil {
			return int64(n), true
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
	} else {
		n, err := strconv.ParseInt(num, 10, bits)
		if err == nil {
			return n, true
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	lo, hi := -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
	if kind == KindUint8 {
		lo, hi = 0, math.Ldexp(1, bits)
	}
	if t < lo || t >= hi {
		return 0, false
	}
	return int64(t), true
}

func parseFloat(s string, bits int, c Culture) (float64, bool) {
	switch s {
	case "NaN":
		return math.NaN(), true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	num, ok := normalizeNumber(s, c)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, bits)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseDecimal(s string, c Culture) (decimal.Decimal, bool) {
	num, ok := normalizeNumber(s, c)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseBool(s string) (bool, bool) {
	switch {
	case strings.EqualFold(s, "true"), s == "1", strings.EqualFold(s, "yes"):
		return true, true
	case strings.EqualFold(s, "false"), s == "0", strings.EqualFold(s, "no"):
		return false, true
	}
	return false, false
}

// parseTime reads a serial day count first and falls back to the culture's
// date layouts.
func parseTime(s string, c Culture) (time.Time, bool) {
	if num, ok := normalizeNumber(s, c); ok {
		if serial, err := strconv.ParseFloat(num, 64); err == nil && serial >= 0 && serial <= MaxSerial {
			if t, ok := SerialToTime(serial, c.Location); ok {
				return t, true
			}
		}
	}
	for _, layout := range c.DateLayouts {
		if t, err := time.ParseInLocation(layout, s, c.Location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// normalizeNumber rewrites culture-formatted numeric text into the form
// strconv understands. It accepts a leading or trailing sign, parentheses
// for negatives, a currency symbol at either end, group separators and an
// exponent. Anything else is rejected.
func normalizeNumber(s string, c Culture) (string, bool) {
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if c.CurrencySymbol != "" {
		s = strings.TrimSpace(strings.TrimPrefix(s, c.CurrencySymbol))
		s = strings.TrimSpace(strings.TrimSuffix(s, c.CurrencySymbol))
	}
	switch {
	case strings.HasSuffix(s, "-"):
		neg = !neg
		s = strings.TrimSpace(s[:len(s)-1])
	case strings.HasSuffix(s, "+"):
		s = strings.TrimSpace(s[:len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		if neg {
			return "", false
		}
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if c.GroupSeparator != "" && c.GroupSeparator != c.DecimalSeparator {
		s = strings.ReplaceAll(s, c.GroupSeparator, "")
	}
	if c.DecimalSeparator != "." {
		if strings.Contains(s, ".") {
			return "", false
		}
		s = strings.Replace(s, c.DecimalSeparator, ".", 1)
	}
	if s == "" {
		return "", false
	}

	digits := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.':
		case r == 'e' || r == 'E':
			if !digits {
				return "", false
			}
		case r == '+' || r == '-':
			if i == 0 || (s[i-1] != 'e' && s[i-1] != 'E') {
				return "", false
			}
		default:
			return "", false
		}
	}
	if !digits {
		return "", false
	}
	if neg {
		return "-" + s, true
	}
	return s, true
}
