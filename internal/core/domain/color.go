package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

type Color struct {
	R, G, B uint8
}

// ParseColor accepts "#RRGGBB", "RRGGBB", "0xRRGGBB" and "R G B" (also comma separated).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 3 {
		var c [3]uint8
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
			}
			c[i] = uint8(v)
		}

		return Color{R: c[0], G: c[1], B: c[2]}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
