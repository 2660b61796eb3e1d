package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoColorFound = errors.New("no color found")
	ErrInvalidColor = errors.New("invalid color")
)

// RGB is a color as three 0-255 channels. It encodes to JSON as [r,g,b].
type RGB [3]int

// ParseColor returns the hex background color declared in the inline style of
// a color-bearing element.
func ParseColor(n Node) (string, error) {
	style, ok := n.Attr("style")

	if !ok {
		return "", fmt.Errorf("%w: element has no style attribute", ErrNoColorFound)
	}

	return ParseStyleColor(style)
}

// ParseStyleColor scans the declarations of an inline style for the first
// background-color and returns it as lowercase #rrggbb.
func ParseStyleColor(style string) (string, error) {
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)

		i := strings.Index(decl, ":")

		if i < 0 {
			continue
		}

		if strings.TrimSpace(decl[:i]) != "background-color" {
			continue
		}

		return ColorToHex(strings.TrimSpace(decl[i+1:]))
	}

	return "", fmt.Errorf("%w in style %q", ErrNoColorFound, style)
}

// ColorToHex accepts either a CSS color keyword or a hex color.
func ColorToHex(value string) (string, error) {
	if hex, ok := NameToHex(value); ok {
		return hex, nil
	}

	return NormalizeHex(value)
}

// NameToHex looks up a CSS3 color keyword, ignoring case.
func NameToHex(name string) (string, bool) {
	hex, ok := ColorNames[strings.ToLower(strings.TrimSpace(name))]

	return hex, ok
}

// NormalizeHex turns #rgb or #rrggbb (any case) into lowercase #rrggbb.
func NormalizeHex(value string) (string, error) {
	if !strings.HasPrefix(value, "#") {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}

	digits := strings.ToLower(value[1:])

	for _, c := range digits {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
	}

	switch len(digits) {
	case 3:
		return "#" + string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]}), nil
	case 6:
		return "#" + digits, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
}

// HexToRGB decodes a hex color after normalizing it.
func HexToRGB(value string) (RGB, error) {
	hex, err := NormalizeHex(value)

	if err != nil {
		return RGB{}, err
	}

	var rgb RGB

	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)

		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}

		rgb[i] = int(v)
	}

	return rgb, nil
}
