package stereoconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned when a length token is neither a pixel count nor a percentage.
var ErrInvalidLength = errors.New("invalid length token")

// LengthKind tells how a Length is resolved.
type LengthKind int

const (
	// Pixels is an absolute pixel count.
	Pixels LengthKind = iota
	// Percent is a percentage of a reference dimension.
	Percent
)

// Length is a pixel count or a percentage of some reference dimension.
type Length struct {
	Kind  LengthKind
	Value float64
}

// Px returns a Length of n pixels.
func Px(n int) Length { return Length{Kind: Pixels, Value: float64(n)} }

// Pct returns a Length of p percent.
func Pct(p float64) Length { return Length{Kind: Percent, Value: p} }

// ParseLength parses a token such as "10" or "12.5%".
func ParseLength(token string) (Length, error) {
	s := strings.TrimSpace(token)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, token)
		}
		return Pct(v), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, token)
	}
	return Px(n), nil
}

// MustParseLength is like ParseLength but panics if token cannot be parsed.
func MustParseLength(token string) Length {
	l, err := ParseLength(token)
	if err != nil {
		panic(err)
	}
	return l
}

// Resolve returns the length in pixels relative to reference.
// Percentages are rounded to the nearest pixel. The result may be negative.
func (l Length) Resolve(reference int) int {
	if l.Kind == Percent {
		return int(math.Round(l.Value / 100 * float64(reference)))
	}
	return int(l.Value)
}

// IsZero reports whether l always resolves to 0.
func (l Length) IsZero() bool { return l.Value == 0 }

func (l Length) String() string {
	if l.Kind == Percent {
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	}
	return strconv.Itoa(int(l.Value))
}

// ResolveLength parses token and resolves it against reference.
func ResolveLength(token string, reference int) (int, error) {
	l, err := ParseLength(token)
	if err != nil {
		return 0, err
	}
	return l.Resolve(reference), nil
}
