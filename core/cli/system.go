package cli

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const errorColor = 0xf04747

// ErrorHandler reports an engine error back to the caller.
type ErrorHandler func(ctx context.Context, c Caller, err *Error) error

// System is the root of a command tree. Build it once, then share it read only.
type System struct {
	root         *Command
	errorHandler ErrorHandler
}

func NewSystem(name, description string) (*System, error) {
	root, err := newCommand(name, description, "", nil, nil)
	if err != nil {
		return nil, err
	}
	return &System{root: root, errorHandler: DefaultErrorHandler}, nil
}

// Command registers a top level command.
func (s *System) Command(name, description string, fn Func) (*Command, error) {
	return s.root.Command(name, description, fn)
}

func (s *System) Commands() []*Command {
	return s.root.SubCommands()
}

func (s *System) CommandCount() int {
	return len(s.root.order)
}

func (s *System) TreeString(details bool) string {
	return s.root.TreeString(details)
}

func (s *System) SetErrorHandler(h ErrorHandler) error {
	if h == nil {
		return newError(TypeError, "error handler must not be nil")
	}
	s.errorHandler = h
	return nil
}

// Lookup resolves input to a command without running it.
func (s *System) Lookup(ctx context.Context, c Caller, input string) (*Command, []string, error) {
	cmd, rest, _, err := s.lookup(ctx, c, input)
	return cmd, rest, err
}

// lookup also returns the text following the command path as it was written.
func (s *System) lookup(ctx context.Context, c Caller, input string) (*Command, []string, string, error) {
	spans, err := splitSpans(input)
	if err != nil {
		return nil, nil, "", err
	}
	tokens := make([]string, len(spans))
	for i, sp := range spans {
		tokens[i] = sp.token
	}
	cmd, rest, err := s.root.resolve(ctx, c, tokens)
	if err != nil {
		return nil, nil, "", err
	}
	if cmd == s.root {
		return nil, nil, "", newError(CommandNotFoundError, "Command not found")
	}
	raw := ""
	if len(rest) != 0 {
		raw = strings.TrimSpace(input[spans[len(spans)-len(rest)].start:])
	}
	return cmd, rest, raw, nil
}

// Execute runs the command named by input. Errors are returned as is, see HandleError.
func (s *System) Execute(ctx context.Context, c Caller, input string) error {
	cmd, rest, raw, err := s.lookup(ctx, c, input)
	if err != nil {
		return err
	}
	return cmd.execute(ctx, c, rest, raw)
}

// Run executes input and passes engine errors to the error handler.
func (s *System) Run(ctx context.Context, c Caller, input string) error {
	return s.HandleError(ctx, c, s.Execute(ctx, c, input))
}

// HandleError gives engine errors to the error handler. Other errors come back unchanged.
func (s *System) HandleError(ctx context.Context, c Caller, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	return s.errorHandler(ctx, c, e)
}

// Usage returns the usage message of the command named by input.
func (s *System) Usage(ctx context.Context, c Caller, input string) (string, error) {
	cmd, _, err := s.Lookup(ctx, c, input)
	if err != nil {
		return "", err
	}
	return cmd.Usage(ctx, c)
}

func ErrorEmbed(err *Error) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error parsing command",
		Description: ":x:" + err.Message,
		Color:       errorColor,
	}
}

func DefaultErrorHandler(_ context.Context, c Caller, err *Error) error {
	return c.ReplyEmbed(ErrorEmbed(err))
}

// Split breaks a command line into tokens on whitespace. Double quotes group text
// containing whitespace and a backslash takes the next character literally.
func Split(input string) ([]string, error) {
	spans, err := splitSpans(input)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, sp := range spans {
		tokens = append(tokens, sp.token)
	}
	return tokens, nil
}

// span is a token and the byte offset in the input where it starts.
type span struct {
	token string
	start int
}

func splitSpans(input string) ([]span, error) {
	var (
		result  []span
		current strings.Builder
		start   = -1
		quoted  bool
		escape  bool
	)
	flush := func() {
		if current.Len() != 0 {
			result = append(result, span{current.String(), start})
			current.Reset()
		}
		start = -1
	}
	for i, r := range input {
		if escape {
			current.WriteRune(r)
			escape = false
			continue
		}
		if unicode.IsSpace(r) && !quoted {
			flush()
			continue
		}
		if start < 0 {
			start = i
		}
		switch r {
		case '\\':
			escape = true
		case '"':
			if !quoted && current.Len() != 0 {
				return nil, newError(ValueError, "A quote used to start escaping text must follow a space")
			}
			if next, _ := utf8.DecodeRuneInString(input[i+1:]); quoted && i+1 < len(input) && !unicode.IsSpace(next) {
				return nil, newError(ValueError, "A quote used to end escaping text must be followed by a space")
			}
			quoted = !quoted
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return result, nil
}
