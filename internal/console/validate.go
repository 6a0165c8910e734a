// Package console provides the line-oriented terminal helpers used by the
// plain frontend: validated scalar prompts, numbered menus and a bordered
// table renderer.
package console

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput = errors.New("input is empty")
	ErrNotInteger = errors.New("not a valid integer")
	ErrNotNumber  = errors.New("not a valid number")
)

// ValidateNonEmpty rejects input that is blank after trimming.
func ValidateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyInput
	}
	return nil
}

// ValidateInt accepts an optional sign followed by at least one digit.
func ValidateInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyInput
	}
	digits := strings.TrimLeft(s[:1], "+-") + s[1:]
	if digits == "" {
		return fmt.Errorf("%q: %w", s, ErrNotInteger)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return fmt.Errorf("%q: %w", s, ErrNotInteger)
		}
	}
	return nil
}

// ValidateFloat accepts an optional sign, digits and at most one decimal
// point. At least one digit is required, so "." and "-." are rejected.
func ValidateFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyInput
	}
	body := strings.TrimLeft(s[:1], "+-") + s[1:]
	points, digits := 0, 0
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '.':
			points++
			if points > 1 {
				return fmt.Errorf("%q: %w", s, ErrNotNumber)
			}
		case c >= '0' && c <= '9':
			digits++
		default:
			return fmt.Errorf("%q: %w", s, ErrNotNumber)
		}
	}
	if digits == 0 {
		return fmt.Errorf("%q: %w", s, ErrNotNumber)
	}
	return nil
}
