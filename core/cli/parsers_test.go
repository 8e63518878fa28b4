package cli

import (
	"testing"
	"time"
)

func TestParsers(t *testing.T) {
	integer, _ := NewIntegerParser(Between[int64](1, 6))
	float, _ := NewFloatParser(AtLeast(0.5).ExcludeMinimum())
	word, _ := NewWordParser(Range[int]{Max: ptr(6)})
	str, _ := NewStringParser(Range[int]{Min: ptr(2)})
	enum, _ := NewEnumParser([]string{"rock", "paper"})
	date, _ := NewDateParser(Range[string]{Min: ptr("01/01/2020")})
	clock, _ := NewTimeParser(Between("08:00:00", "17:00:00"))

	tests := []struct {
		name   string
		parser Parser
		input  string
		want   interface{}
		err    string
	}{
		{"integer", integer, "3", int64(3), ""},
		{"integer min", integer, "1", int64(1), ""},
		{"integer max excluded", integer, "6", nil, "must be less than 6"},
		{"integer below", integer, "0", nil, "cannot be less than 1"},
		{"integer type", integer, "3.5", nil, "must represent an integer"},
		{"float", float, "0.75", 0.75, ""},
		{"float min excluded", float, "0.5", nil, "must be greater than 0.5"},
		{"word", word, "hello", "hello", ""},
		{"word too long", word, "abcdef", nil, "length must be less than 6"},
		{"word with digits", word, "abc1", nil, "must represent a word"},
		{"string", str, "a b", "a b", ""},
		{"string short", str, "a", nil, "length cannot be less than 2"},
		{"enum", enum, "paper", "paper", ""},
		{"enum miss", enum, "scissors", nil, "must be element in [rock, paper]"},
		{"date", date, "31/12/2020", time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), ""},
		{"date early", date, "31/12/2019", nil, "cannot be less than 01/01/2020"},
		{"date invalid", date, "31/02/2020", nil, "must represent a date"},
		{"time", clock, "09:30:00", time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC), ""},
		{"time late", clock, "17:00:00", nil, "must be less than 17:00:00"},
		{"user mention", NewUserMentionParser(), "<@123>", "123", ""},
		{"nick mention", NewUserMentionParser(), "<@!456>", "456", ""},
		{"channel mention", NewChannelMentionParser(), "<#7>", "7", ""},
		{"role mention", NewRoleMentionParser(), "<@&8>", "8", ""},
		{"role mention type", NewRoleMentionParser(), "<@8>", nil, "must represent a role mention"},
	}

	for _, tt := range tests {
		got, err := tt.parser.Parse(tt.input)
		if tt.err != "" {
			if err == nil || err.Error() != tt.err {
				t.Errorf("%s: error = %v, want %q", tt.name, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if gotTime, ok := got.(time.Time); ok {
			if !gotTime.Equal(tt.want.(time.Time)) {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParserConstructorErrors(t *testing.T) {
	if _, err := NewWordParser(Between(4, 2)); err == nil || err.Error() != "min_length cannot be greater than max_length" {
		t.Errorf("word parser error = %v", err)
	}
	if _, err := NewEnumParser(nil); err == nil || err.Error() != "enum values must not have length 0" {
		t.Errorf("empty enum error = %v", err)
	}
	if _, err := NewEnumParser([]string{"ok", "not ok"}); err == nil || err.Error() != "enum values elements must represent a word" {
		t.Errorf("enum element error = %v", err)
	}
	if _, err := NewDateParser(Range[string]{Min: ptr("2020-01-01")}); !IsKind(err, TypeError) {
		t.Errorf("date bound error = %v", err)
	}
}

func TestRangeModifiers(t *testing.T) {
	r := Between(1, 5).IncludeMaximum()
	if !r.IncludeMax || r.ExcludeMin {
		t.Errorf("IncludeMaximum changed the wrong bound: %+v", r)
	}
	r = Between(1, 5).ExcludeMinimum()
	if !r.ExcludeMin || r.IncludeMax {
		t.Errorf("ExcludeMinimum changed the wrong bound: %+v", r)
	}

	closed, err := NewIntegerParser(Between[int64](1, 5).IncludeMaximum().ExcludeMinimum())
	if err != nil {
		t.Fatalf("NewIntegerParser: %v", err)
	}
	for input, ok := range map[string]bool{"1": false, "2": true, "5": true, "6": false} {
		if _, err := closed.Parse(input); (err == nil) != ok {
			t.Errorf("Parse(%s) = %v, want ok=%v", input, err, ok)
		}
	}
}
