package cli

import (
	"strings"
	"time"
)

// Argument is a required positional parameter.
type Argument struct {
	Name        string
	Description string
	Parser      Parser
}

// String renders e.g. "index:integer | The index of the record to display".
func (a *Argument) String() string {
	elements := []string{a.Name + ":" + a.Parser.String()}
	if a.Description != "" {
		elements = append(elements, a.Description)
	}
	return strings.Join(elements, " | ")
}

func (a *Argument) Parse(input string) (interface{}, error) {
	return a.Parser.Parse(input)
}

// ArgumentBuilder keeps the ordered arguments of one command.
type ArgumentBuilder struct {
	command     *Command
	arguments   []*Argument
	byName      map[string]*Argument
	firstIsText bool
	// raw takes the untokenized rest of the input and is then the only parameter
	raw *Argument
}

func newArgumentBuilder(c *Command) *ArgumentBuilder {
	return &ArgumentBuilder{command: c, byName: map[string]*Argument{}}
}

func (b *ArgumentBuilder) add(name, description string, parser Parser, parserErr error) error {
	if b.command.fn == nil {
		return newError(CannotAddParametersError, "Can't add argument to command without function assigned to it")
	}
	if err := b.command.checkNotRaw(); err != nil {
		return err
	}
	if parserErr != nil {
		return parserErr
	}
	if err := ValidateWord(name); err != nil {
		return prefixed(err, "Argument name")
	}
	if err := b.command.checkName(name, "argument"); err != nil {
		return err
	}

	text := isTextParser(parser)
	if text && len(b.command.subCommands) != 0 {
		return newError(AmbiguousParameterError, "Cannot add %s argument to '%s' as it has sub commands", parser, b.command.path)
	}
	if len(b.arguments) == 0 {
		b.firstIsText = text
	}
	arg := &Argument{Name: name, Description: description, Parser: parser}
	b.arguments = append(b.arguments, arg)
	b.byName[name] = arg
	return nil
}

func (b *ArgumentBuilder) Integer(name, description string, bounds Range[int64]) error {
	p, err := NewIntegerParser(bounds)
	return b.add(name, description, p, err)
}

func (b *ArgumentBuilder) Float(name, description string, bounds Range[float64]) error {
	p, err := NewFloatParser(bounds)
	return b.add(name, description, p, err)
}

// Word adds a letters-only argument; length bounds the number of characters.
func (b *ArgumentBuilder) Word(name, description string, length Range[int]) error {
	p, err := NewWordParser(length)
	return b.add(name, description, p, err)
}

func (b *ArgumentBuilder) String(name, description string, length Range[int]) error {
	p, err := NewStringParser(length)
	return b.add(name, description, p, err)
}

func (b *ArgumentBuilder) Enum(name, description string, values ...string) error {
	p, err := NewEnumParser(values)
	return b.add(name, description, p, err)
}

// Date bounds use the dd/mm/yyyy form.
func (b *ArgumentBuilder) Date(name, description string, bounds Range[string]) error {
	p, err := NewDateParser(bounds)
	return b.add(name, description, p, err)
}

// Time bounds use the HH:MM:SS form.
func (b *ArgumentBuilder) Time(name, description string, bounds Range[string]) error {
	p, err := NewTimeParser(bounds)
	return b.add(name, description, p, err)
}

func (b *ArgumentBuilder) UserMention(name, description string) error {
	return b.add(name, description, NewUserMentionParser(), nil)
}

func (b *ArgumentBuilder) ChannelMention(name, description string) error {
	return b.add(name, description, NewChannelMentionParser(), nil)
}

func (b *ArgumentBuilder) RoleMention(name, description string) error {
	return b.add(name, description, NewRoleMentionParser(), nil)
}

// Raw adds an argument holding the rest of the input exactly as written, possibly empty.
// It cannot be combined with other parameters.
func (b *ArgumentBuilder) Raw(name, description string) error {
	if b.command.fn != nil && b.command.parameterCount() != 0 {
		return newError(CannotAddParametersError, "A raw argument must be the only parameter of '%s'", b.command.path)
	}
	if err := b.add(name, description, &RawParser{}, nil); err != nil {
		return err
	}
	b.raw = b.arguments[0]
	return nil
}

func (b *ArgumentBuilder) Arguments() []*Argument {
	return b.arguments
}

func (b *ArgumentBuilder) Count() int {
	return len(b.arguments)
}

// FirstIsText reports whether the first argument could be mistaken for a sub command name.
func (b *ArgumentBuilder) FirstIsText() bool {
	return b.firstIsText
}

// Params is the result of binding a token list to a command: argument, option and tag
// values keyed by parameter name. Options that were not given hold nil, tags hold false.
type Params map[string]interface{}

func (p Params) IsSet(name string) bool {
	return p[name] != nil
}

func (p Params) Int(name string) int64 {
	v, _ := p[name].(int64)
	return v
}

func (p Params) Float(name string) float64 {
	v, _ := p[name].(float64)
	return v
}

// String also returns the id extracted by the mention parsers.
func (p Params) String(name string) string {
	v, _ := p[name].(string)
	return v
}

func (p Params) Bool(name string) bool {
	v, _ := p[name].(bool)
	return v
}

func (p Params) Time(name string) time.Time {
	v, _ := p[name].(time.Time)
	return v
}
