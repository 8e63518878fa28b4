package cli

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoas/go-funk"
)

// Parser converts a single token into a typed value.
// String returns the type name shown in usage text.
type Parser interface {
	Parse(input string) (interface{}, error)
	String() string
}

type IntegerParser struct {
	bounds Range[int64]
}

// NewIntegerParser fails when the range has min > max.
func NewIntegerParser(bounds Range[int64]) (*IntegerParser, error) {
	if err := bounds.check(cmp.Compare[int64], ""); err != nil {
		return nil, err
	}
	return &IntegerParser{bounds: bounds}, nil
}

func (p *IntegerParser) Parse(input string) (interface{}, error) {
	if err := ValidateInteger(input); err != nil {
		return nil, err
	}
	v, _ := strconv.ParseInt(input, 10, 64)
	if err := p.bounds.validate(v, cmp.Compare[int64], formatValue[int64]); err != nil {
		return nil, err
	}
	return v, nil
}

func (*IntegerParser) String() string { return "integer" }

type FloatParser struct {
	bounds Range[float64]
}

func NewFloatParser(bounds Range[float64]) (*FloatParser, error) {
	if err := bounds.check(cmp.Compare[float64], ""); err != nil {
		return nil, err
	}
	return &FloatParser{bounds: bounds}, nil
}

func (p *FloatParser) Parse(input string) (interface{}, error) {
	if err := ValidateFloat(input); err != nil {
		return nil, err
	}
	v, _ := strconv.ParseFloat(input, 64)
	if err := p.bounds.validate(v, cmp.Compare[float64], formatValue[float64]); err != nil {
		return nil, err
	}
	return v, nil
}

func (*FloatParser) String() string { return "float" }

// lengthParser is shared by the word and string parsers; both bound the input length.
type lengthParser struct {
	length Range[int]
	name   string
	check  func(string) error
}

func newLengthParser(length Range[int], name string, check func(string) error) (lengthParser, error) {
	if err := length.check(cmp.Compare[int], "_length"); err != nil {
		return lengthParser{}, err
	}
	return lengthParser{length: length, name: name, check: check}, nil
}

func (p lengthParser) Parse(input string) (interface{}, error) {
	if err := p.check(input); err != nil {
		return nil, err
	}
	if err := p.length.validate(len([]rune(input)), cmp.Compare[int], formatValue[int]); err != nil {
		return nil, prefixed(err, "length")
	}
	return input, nil
}

func (p lengthParser) String() string { return p.name }

// WordParser accepts letters only.
type WordParser struct{ lengthParser }

func NewWordParser(length Range[int]) (*WordParser, error) {
	p, err := newLengthParser(length, "word", ValidateWord)
	if err != nil {
		return nil, err
	}
	return &WordParser{p}, nil
}

// StringParser accepts any non-empty text.
type StringParser struct{ lengthParser }

func NewStringParser(length Range[int]) (*StringParser, error) {
	p, err := newLengthParser(length, "string", ValidateString)
	if err != nil {
		return nil, err
	}
	return &StringParser{p}, nil
}

// EnumParser accepts one of a fixed set of words.
type EnumParser struct {
	values []string
}

func NewEnumParser(values []string) (*EnumParser, error) {
	if len(values) == 0 {
		return nil, newError(ValueError, "enum values must not have length 0")
	}
	for _, v := range values {
		if err := ValidateWord(v); err != nil {
			return nil, prefixed(err, "enum values elements")
		}
	}
	return &EnumParser{values: slices.Clone(values)}, nil
}

func (p *EnumParser) Parse(input string) (interface{}, error) {
	if err := ValidateString(input); err != nil {
		return nil, err
	}
	if !funk.ContainsString(p.values, input) {
		return nil, newError(ValueError, "must be element in [%s]", strings.Join(p.values, ", "))
	}
	return input, nil
}

func (*EnumParser) String() string { return "enum" }

// Values returns the accepted words in registration order.
func (p *EnumParser) Values() []string { return slices.Clone(p.values) }

// timeParser backs the date and time parsers.
type timeParser struct {
	bounds   Range[time.Time]
	layout   string
	name     string
	validate func(string) error
}

func newTimeParser(bounds Range[string], layout, name string, validate func(string) error) (*timeParser, error) {
	parsed := Range[time.Time]{ExcludeMin: bounds.ExcludeMin, IncludeMax: bounds.IncludeMax}
	for _, edge := range []struct {
		label string
		value *string
		dst   **time.Time
	}{{"min", bounds.Min, &parsed.Min}, {"max", bounds.Max, &parsed.Max}} {
		if edge.value == nil {
			continue
		}
		if err := validate(*edge.value); err != nil {
			return nil, prefixed(err, "%s", edge.label)
		}
		t, _ := time.Parse(layout, *edge.value)
		*edge.dst = &t
	}
	if err := parsed.check(compareTime, ""); err != nil {
		return nil, err
	}
	return &timeParser{bounds: parsed, layout: layout, name: name, validate: validate}, nil
}

func compareTime(a, b time.Time) int { return a.Compare(b) }

func (p *timeParser) Parse(input string) (interface{}, error) {
	if err := p.validate(input); err != nil {
		return nil, err
	}
	t, _ := time.Parse(p.layout, input)
	format := func(v time.Time) string { return v.Format(p.layout) }
	if err := p.bounds.validate(t, compareTime, format); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *timeParser) String() string { return p.name }

// DateParser parses dd/mm/yyyy into a time.Time at midnight UTC.
type DateParser struct{ *timeParser }

// NewDateParser takes its bounds in the dd/mm/yyyy form.
func NewDateParser(bounds Range[string]) (*DateParser, error) {
	p, err := newTimeParser(bounds, DateLayout, "date", ValidateDate)
	if err != nil {
		return nil, err
	}
	return &DateParser{p}, nil
}

// TimeParser parses HH:MM:SS into a time.Time on 0000-01-01.
type TimeParser struct{ *timeParser }

// NewTimeParser takes its bounds in the HH:MM:SS form.
func NewTimeParser(bounds Range[string]) (*TimeParser, error) {
	p, err := newTimeParser(bounds, TimeLayout, "time", ValidateTime)
	if err != nil {
		return nil, err
	}
	return &TimeParser{p}, nil
}

// mentionParser extracts the snowflake id out of a Discord mention.
type mentionParser struct {
	re      *regexp.Regexp
	name    string
	message string
}

func (p mentionParser) Parse(input string) (interface{}, error) {
	if err := validatePattern(input, p.re, p.message); err != nil {
		return nil, err
	}
	return p.re.FindStringSubmatch(input)[1], nil
}

func (p mentionParser) String() string { return p.name }

// UserMentionParser accepts <@id> and <@!id>.
type UserMentionParser struct{ mentionParser }

func NewUserMentionParser() *UserMentionParser {
	return &UserMentionParser{mentionParser{userMentionRe, "user_mention", "must represent a user mention"}}
}

// ChannelMentionParser accepts <#id>.
type ChannelMentionParser struct{ mentionParser }

func NewChannelMentionParser() *ChannelMentionParser {
	return &ChannelMentionParser{mentionParser{channelMentionRe, "channel_mention", "must represent a channel mention"}}
}

// RoleMentionParser accepts <@&id>.
type RoleMentionParser struct{ mentionParser }

func NewRoleMentionParser() *RoleMentionParser {
	return &RoleMentionParser{mentionParser{roleMentionRe, "role_mention", "must represent a role mention"}}
}

// RawParser accepts anything, the empty string included.
type RawParser struct{}

func (*RawParser) Parse(input string) (interface{}, error) { return input, nil }

func (*RawParser) String() string { return "raw" }

// isTextParser reports whether a parser can accept a token that looks like a command name.
func isTextParser(p Parser) bool {
	switch p.(type) {
	case *WordParser, *StringParser, *EnumParser, *RawParser:
		return true
	}
	return false
}
