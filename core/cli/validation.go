package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04:05"
)

var (
	commandNameRe    = regexp.MustCompile(`^[a-zA-Z_]+$`)
	wordRe           = regexp.MustCompile(`^[a-zA-Z]+$`)
	userMentionRe    = regexp.MustCompile(`^<@!?(\d+)>$`)
	channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)
	roleMentionRe    = regexp.MustCompile(`^<@&(\d+)>$`)
	dateRe           = regexp.MustCompile(`^\d\d/\d\d/\d\d\d\d$`)
	timeRe           = regexp.MustCompile(`^\d\d:\d\d:\d\d$`)
)

func ValidateString(s string) error {
	if len(s) == 0 {
		return newError(ValueError, "must not have 0 length")
	}
	return nil
}

// ValidateCommandName accepts letters and underscores.
func ValidateCommandName(s string) error {
	if err := ValidateString(s); err != nil {
		return err
	}
	if !commandNameRe.MatchString(s) {
		return newError(ValueError, "must only contain letters and underscores")
	}
	return nil
}

// ValidateWord accepts letters only.
func ValidateWord(s string) error {
	if err := ValidateString(s); err != nil {
		return err
	}
	if !wordRe.MatchString(s) {
		return newError(ValueError, "must represent a word")
	}
	return nil
}

func ValidateLetter(s string) error {
	if err := ValidateWord(s); err != nil {
		return err
	}
	if len(s) != 1 {
		return newError(ValueError, "must have length 1")
	}
	return nil
}

func ValidateInteger(s string) error {
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return newError(TypeError, "must represent an integer")
	}
	return nil
}

func ValidateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return newError(TypeError, "must represent a float")
	}
	return nil
}

func ValidateUserMention(s string) error {
	return validatePattern(s, userMentionRe, "must represent a user mention")
}

func ValidateChannelMention(s string) error {
	return validatePattern(s, channelMentionRe, "must represent a channel mention")
}

func ValidateRoleMention(s string) error {
	return validatePattern(s, roleMentionRe, "must represent a role mention")
}

// ValidateDate accepts dd/mm/yyyy.
func ValidateDate(s string) error {
	if err := validatePattern(s, dateRe, "must represent a date"); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return newError(ValueError, "must represent a date")
	}
	return nil
}

// ValidateTime accepts HH:MM:SS.
func ValidateTime(s string) error {
	if err := validatePattern(s, timeRe, "must represent a time"); err != nil {
		return err
	}
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return newError(ValueError, "must represent a time")
	}
	return nil
}

func validatePattern(s string, re *regexp.Regexp, message string) error {
	if err := ValidateString(s); err != nil {
		return err
	}
	if !re.MatchString(s) {
		return newError(TypeError, "%s", message)
	}
	return nil
}

// Range bounds a parsed value. A nil Min or Max leaves that side open.
// The zero value includes the minimum and excludes the maximum.
type Range[T any] struct {
	Min, Max   *T
	ExcludeMin bool
	IncludeMax bool
}

// Between builds a half-open range [min, max).
func Between[T any](min, max T) Range[T] {
	return Range[T]{Min: &min, Max: &max}
}

func AtLeast[T any](min T) Range[T] {
	return Range[T]{Min: &min}
}

// Below builds an exclusive upper bound.
func Below[T any](max T) Range[T] {
	return Range[T]{Max: &max}
}

// IncludeMaximum returns a copy of r that also accepts its maximum.
func (r Range[T]) IncludeMaximum() Range[T] {
	r.IncludeMax = true
	return r
}

// ExcludeMinimum returns a copy of r that rejects its minimum.
func (r Range[T]) ExcludeMinimum() Range[T] {
	r.ExcludeMin = true
	return r
}

// check verifies min <= max when both are set.
func (r Range[T]) check(compare func(a, b T) int, what string) error {
	if r.Min != nil && r.Max != nil && compare(*r.Min, *r.Max) > 0 {
		return newError(ValueError, "min%s cannot be greater than max%s", what, what)
	}
	return nil
}

func (r Range[T]) validate(value T, compare func(a, b T) int, format func(T) string) error {
	if r.Min != nil {
		c := compare(value, *r.Min)
		if r.ExcludeMin && c <= 0 {
			return newError(ValueError, "must be greater than %s", format(*r.Min))
		}
		if c < 0 {
			return newError(ValueError, "cannot be less than %s", format(*r.Min))
		}
	}
	if r.Max != nil {
		c := compare(value, *r.Max)
		if !r.IncludeMax && c >= 0 {
			return newError(ValueError, "must be less than %s", format(*r.Max))
		}
		if c > 0 {
			return newError(ValueError, "cannot be greater than %s", format(*r.Max))
		}
	}
	return nil
}

func formatValue[T any](v T) string {
	return fmt.Sprint(v)
}
