package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ISODateLayout is the date form used by forms and the HTTP boundary
const ISODateLayout = "2006-01-02"

// FromISODate converts YYYY-MM-DD into the canonical DD.MM.YYYY form
func FromISODate(iso string) (string, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(iso))
	if err != nil {
		return "", fmt.Errorf("%w: %q: want YYYY-MM-DD", ErrInvalidDateFormat, iso)
	}
	return t.Format(DateLayout), nil
}

// ToISODate converts a canonical DD.MM.YYYY date into YYYY-MM-DD
func ToISODate(date string) (string, error) {
	year, month, day, err := splitDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// NormalizeDate accepts either boundary form and returns the canonical one.
// Unpadded canonical dates such as 9.1.2025 are padded.
func NormalizeDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "-") {
		return FromISODate(input)
	}
	t, err := ParseDate(input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
	}
	return FormatDate(t), nil
}
