package cli

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseParams(t *testing.T) {
	sys, err := NewSystem("bot", "")
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	cmd := mustCommand(t)(sys.Command("event", "", noop))
	steps := []error{
		cmd.Arguments().Integer("offset", "", Range[int64]{}),
		cmd.Arguments().Date("day", "", Range[string]{}),
		cmd.Options().UserMention(Flag{Name: "user"}),
		cmd.Options().Enum(Flag{Name: "mode", Letter: "m", Word: "mode"}, "fast", "slow"),
		cmd.Tag(Flag{Name: "all"}),
		cmd.Tag(Flag{Name: "bold"}),
		cmd.Tag(Flag{Name: "quiet", Letter: "q", Word: "quiet"}),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	tests := []struct {
		name   string
		tokens []string
		want   Params
	}{
		{
			name:   "negative number is a value",
			tokens: []string{"-5", "01/02/2020"},
			want: Params{
				"offset": int64(-5), "day": time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
				"user": nil, "mode": nil, "all": false, "bold": false, "quiet": false,
			},
		},
		{
			name:   "packed tags and options between arguments",
			tokens: []string{"-ab", "3", "-u", "<@!42>", "01/01/2021", "--mode", "slow", "--quiet"},
			want: Params{
				"offset": int64(3), "day": time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				"user": "42", "mode": "slow", "all": true, "bold": true, "quiet": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmd.ParseParams(tt.tokens)
			if err != nil {
				t.Fatalf("ParseParams: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err = cmd.ParseParams([]string{"x", "01/01/2021"})
	if !IsKind(err, TypeError) || err.Error() != "offset must represent an integer" {
		t.Errorf("bad integer error = %v", err)
	}
	_, err = cmd.ParseParams([]string{"1", "01/01/2021", "-m", "medium"})
	if !IsKind(err, ValueError) || err.Error() != "mode must be element in [fast, slow]" {
		t.Errorf("bad enum error = %v", err)
	}
}

func TestParamsAccessors(t *testing.T) {
	p := Params{"n": int64(4), "f": 1.5, "s": "text", "b": true, "missing": nil}
	if p.Int("n") != 4 || p.Float("f") != 1.5 || p.String("s") != "text" || !p.Bool("b") {
		t.Errorf("unexpected accessor values for %v", p)
	}
	if p.IsSet("missing") || p.IsSet("absent") || !p.IsSet("n") {
		t.Errorf("IsSet mismatch")
	}
	if p.Int("s") != 0 || p.String("n") != "" {
		t.Errorf("mismatched types should yield zero values")
	}
}

func TestRegistrationErrors(t *testing.T) {
	newCmd := func(t *testing.T, fn Func) *Command {
		sys, err := NewSystem("bot", "")
		if err != nil {
			t.Fatalf("NewSystem: %v", err)
		}
		return mustCommand(t)(sys.Command("cmd", "", fn))
	}

	tests := []struct {
		name  string
		build func(t *testing.T) error
		kind  ErrorKind
		msg   string
	}{
		{
			name: "argument without function",
			build: func(t *testing.T) error {
				return newCmd(t, nil).Arguments().Integer("n", "", Range[int64]{})
			},
			kind: CannotAddParametersError,
			msg:  "Can't add argument to command without function assigned to it",
		},
		{
			name: "tag without function",
			build: func(t *testing.T) error {
				return newCmd(t, nil).Tag(Flag{Name: "all"})
			},
			kind: CannotAddParametersError,
		},
		{
			name: "duplicate name across builders",
			build: func(t *testing.T) error {
				c := newCmd(t, noop)
				if err := c.Arguments().Integer("count", "", Range[int64]{}); err != nil {
					return err
				}
				return c.Tag(Flag{Name: "count", Letter: "x"})
			},
			kind: NameInUseError,
			msg:  "Tag name 'count' is already used by an argument",
		},
		{
			name: "duplicate letter",
			build: func(t *testing.T) error {
				c := newCmd(t, noop)
				if err := c.Options().Integer(Flag{Name: "count"}, Range[int64]{}); err != nil {
					return err
				}
				return c.Tag(Flag{Name: "clear"})
			},
			kind: LetterInUseError,
			msg:  "Tag letter 'c' is already used by an option",
		},
		{
			name: "duplicate word",
			build: func(t *testing.T) error {
				c := newCmd(t, noop)
				if err := c.Tag(Flag{Name: "all", Word: "every"}); err != nil {
					return err
				}
				return c.Tag(Flag{Name: "each", Letter: "x", Word: "every"})
			},
			kind: WordInUseError,
			msg:  "Tag word 'every' is already used by another tag",
		},
		{
			name: "invalid letter",
			build: func(t *testing.T) error {
				return newCmd(t, noop).Tag(Flag{Name: "all", Letter: "ab"})
			},
			kind: ValueError,
			msg:  "Tag letter must have length 1",
		},
		{
			name: "invalid argument name",
			build: func(t *testing.T) error {
				return newCmd(t, noop).Arguments().Word("two words", "", Range[int]{})
			},
			kind: ValueError,
			msg:  "Argument name must represent a word",
		},
		{
			name: "inverted range",
			build: func(t *testing.T) error {
				return newCmd(t, noop).Arguments().Integer("n", "", Between[int64](5, 1))
			},
			kind: ValueError,
			msg:  "min cannot be greater than max",
		},
		{
			name: "text argument on command with sub commands",
			build: func(t *testing.T) error {
				c := newCmd(t, noop)
				if _, err := c.Command("sub", "", noop); err != nil {
					return err
				}
				return c.Arguments().Word("name", "", Range[int]{})
			},
			kind: AmbiguousParameterError,
			msg:  "Cannot add word argument to 'cmd' as it has sub commands",
		},
		{
			name: "sub command after text argument",
			build: func(t *testing.T) error {
				c := newCmd(t, noop)
				if err := c.Arguments().Enum("mode", "", "a", "b"); err != nil {
					return err
				}
				_, err := c.Command("sub", "", noop)
				return err
			},
			kind: AmbiguousParameterError,
			msg:  "Cannot add sub commands to 'cmd' as its first argument can contain text",
		},
		{
			name: "sub command exists",
			build: func(t *testing.T) error {
				c := newCmd(t, nil)
				if _, err := c.Command("sub", "", noop); err != nil {
					return err
				}
				_, err := c.Command("sub", "", noop)
				return err
			},
			kind: CommandExistsError,
			msg:  "'cmd sub' already exists",
		},
		{
			name: "bad command name",
			build: func(t *testing.T) error {
				_, err := newCmd(t, nil).Command("sub-1", "", noop)
				return err
			},
			kind: ValueError,
			msg:  "Command name must only contain letters and underscores",
		},
		{
			name: "nil permission",
			build: func(t *testing.T) error {
				return newCmd(t, nil).Permission(nil)
			},
			kind: TypeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(t)
			if !IsKind(err, tt.kind) {
				t.Fatalf("kind = %s, want %s (err: %v)", errorKind(err), tt.kind, err)
			}
			if tt.msg != "" && err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestIntegerArgumentAllowsSubCommands(t *testing.T) {
	sys, err := NewSystem("bot", "")
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	var ran string
	cmd := mustCommand(t)(sys.Command("page", "", func(_ context.Context, _ Caller, p Params) error {
		ran = "page"
		return nil
	}))
	if err := cmd.Arguments().Integer("n", "", Range[int64]{}); err != nil {
		t.Fatalf("Integer: %v", err)
	}
	mustCommand(t)(cmd.Command("last", "", func(context.Context, Caller, Params) error {
		ran = "last"
		return nil
	}))

	caller := &fakeCaller{}
	if err := sys.Execute(context.Background(), caller, "page last"); err != nil || ran != "last" {
		t.Errorf("page last: ran %q, err %v", ran, err)
	}
	if err := sys.Execute(context.Background(), caller, "page 3"); err != nil || ran != "page" {
		t.Errorf("page 3: ran %q, err %v", ran, err)
	}
}

func TestRawArgument(t *testing.T) {
	sys, err := NewSystem("bot", "")
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	var got []string
	group := mustCommand(t)(sys.Command("group", "", nil))
	echo := mustCommand(t)(group.Command("echo", "", func(_ context.Context, _ Caller, p Params) error {
		got = append(got, p.String("data"))
		return nil
	}))
	if err := echo.Arguments().Raw("data", "anything"); err != nil {
		t.Fatalf("Raw: %v", err)
	}

	inputs := []string{
		"group echo :crossed_swords: attack :crossed_swords:",
		"group echo",
		"group echo   ",
		`group   echo  -x "quoted  text" --word`,
		"group\techo\tline one\nline two",
	}
	for _, input := range inputs {
		if err := sys.Execute(context.Background(), &fakeCaller{}, input); err != nil {
			t.Errorf("Execute(%q): %v", input, err)
		}
	}
	want := []string{
		":crossed_swords: attack :crossed_swords:",
		"",
		"",
		`-x "quoted  text" --word`,
		"line one\nline two",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}

	params, err := echo.ParseParams([]string{"a", "b"})
	if err != nil || params.String("data") != "a b" {
		t.Errorf("ParseParams = %v, %v", params, err)
	}
}

func TestRawArgumentIsExclusive(t *testing.T) {
	sys, err := NewSystem("bot", "")
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}

	after := mustCommand(t)(sys.Command("after", "", noop))
	if err := after.Arguments().Raw("data", ""); err != nil {
		t.Fatalf("Raw: %v", err)
	}
	for name, err := range map[string]error{
		"argument": after.Arguments().Integer("n", "", Range[int64]{}),
		"option":   after.Options().Integer(Flag{Name: "count"}, Range[int64]{}),
		"tag":      after.Tag(Flag{Name: "all"}),
	} {
		if !IsKind(err, CannotAddParametersError) {
			t.Errorf("%s after raw: kind = %s (err: %v)", name, errorKind(err), err)
		}
	}
	if _, err := after.Command("sub", "", noop); !IsKind(err, AmbiguousParameterError) {
		t.Errorf("sub command after raw: %v", err)
	}

	before := mustCommand(t)(sys.Command("before", "", noop))
	if err := before.Tag(Flag{Name: "all"}); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	err = before.Arguments().Raw("data", "")
	if !IsKind(err, CannotAddParametersError) || err.Error() != "A raw argument must be the only parameter of 'before'" {
		t.Errorf("raw after tag: %v", err)
	}
}
