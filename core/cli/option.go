package cli

import "strings"

// Flag identifies an option or a tag. Letter defaults to the first letter of Name,
// Word is optional.
type Flag struct {
	Name        string
	Description string
	Letter      string
	Word        string
}

func (f Flag) normalize(kind string) (Flag, error) {
	if err := ValidateWord(f.Name); err != nil {
		return f, prefixed(err, "%s name", kind)
	}
	if f.Letter == "" {
		f.Letter = f.Name[:1]
	}
	if err := ValidateLetter(f.Letter); err != nil {
		return f, prefixed(err, "%s letter", kind)
	}
	if f.Word != "" {
		if err := ValidateWord(f.Word); err != nil {
			return f, prefixed(err, "%s word", kind)
		}
	}
	return f, nil
}

func (f Flag) identifiers() []string {
	ids := []string{"-" + f.Letter}
	if f.Word != "" {
		ids = append(ids, "--"+f.Word)
	}
	return ids
}

// Option is a named, valued parameter given as "-x value" or "--word value".
type Option struct {
	Flag
	Parser Parser
}

// String renders e.g. "index:integer | -i | --index | The index of the record to display".
func (o *Option) String() string {
	elements := append([]string{o.Name + ":" + o.Parser.String()}, o.identifiers()...)
	if o.Description != "" {
		elements = append(elements, o.Description)
	}
	return strings.Join(elements, " | ")
}

func (o *Option) Parse(input string) (interface{}, error) {
	return o.Parser.Parse(input)
}

type OptionBuilder struct {
	command  *Command
	options  []*Option
	byName   map[string]*Option
	byLetter map[string]*Option
	byWord   map[string]*Option
}

func newOptionBuilder(c *Command) *OptionBuilder {
	return &OptionBuilder{
		command:  c,
		byName:   map[string]*Option{},
		byLetter: map[string]*Option{},
		byWord:   map[string]*Option{},
	}
}

func (b *OptionBuilder) add(f Flag, parser Parser, parserErr error) error {
	if b.command.fn == nil {
		return newError(CannotAddParametersError, "Can't add option to command without function assigned to it")
	}
	if err := b.command.checkNotRaw(); err != nil {
		return err
	}
	if parserErr != nil {
		return parserErr
	}
	f, err := f.normalize("Option")
	if err != nil {
		return err
	}
	if err := b.command.checkFlag(f, "option"); err != nil {
		return err
	}

	opt := &Option{Flag: f, Parser: parser}
	b.options = append(b.options, opt)
	b.byName[f.Name] = opt
	b.byLetter[f.Letter] = opt
	if f.Word != "" {
		b.byWord[f.Word] = opt
	}
	return nil
}

func (b *OptionBuilder) Integer(f Flag, bounds Range[int64]) error {
	p, err := NewIntegerParser(bounds)
	return b.add(f, p, err)
}

func (b *OptionBuilder) Float(f Flag, bounds Range[float64]) error {
	p, err := NewFloatParser(bounds)
	return b.add(f, p, err)
}

func (b *OptionBuilder) Word(f Flag, length Range[int]) error {
	p, err := NewWordParser(length)
	return b.add(f, p, err)
}

func (b *OptionBuilder) String(f Flag, length Range[int]) error {
	p, err := NewStringParser(length)
	return b.add(f, p, err)
}

func (b *OptionBuilder) Enum(f Flag, values ...string) error {
	p, err := NewEnumParser(values)
	return b.add(f, p, err)
}

func (b *OptionBuilder) Date(f Flag, bounds Range[string]) error {
	p, err := NewDateParser(bounds)
	return b.add(f, p, err)
}

func (b *OptionBuilder) Time(f Flag, bounds Range[string]) error {
	p, err := NewTimeParser(bounds)
	return b.add(f, p, err)
}

func (b *OptionBuilder) UserMention(f Flag) error {
	return b.add(f, NewUserMentionParser(), nil)
}

func (b *OptionBuilder) ChannelMention(f Flag) error {
	return b.add(f, NewChannelMentionParser(), nil)
}

func (b *OptionBuilder) RoleMention(f Flag) error {
	return b.add(f, NewRoleMentionParser(), nil)
}

func (b *OptionBuilder) Options() []*Option {
	return b.options
}

func (b *OptionBuilder) Count() int {
	return len(b.options)
}

// Tag is a boolean parameter: present or absent, no value token.
type Tag struct {
	Flag
}

// String renders e.g. "embed | -e | --embed | displays response in an embed".
func (t *Tag) String() string {
	elements := append([]string{t.Name}, t.identifiers()...)
	if t.Description != "" {
		elements = append(elements, t.Description)
	}
	return strings.Join(elements, " | ")
}

type TagBuilder struct {
	command  *Command
	tags     []*Tag
	byName   map[string]*Tag
	byLetter map[string]*Tag
	byWord   map[string]*Tag
}

func newTagBuilder(c *Command) *TagBuilder {
	return &TagBuilder{
		command:  c,
		byName:   map[string]*Tag{},
		byLetter: map[string]*Tag{},
		byWord:   map[string]*Tag{},
	}
}

func (b *TagBuilder) add(f Flag) error {
	if b.command.fn == nil {
		return newError(CannotAddParametersError, "Can't add tag to command without function assigned to it")
	}
	if err := b.command.checkNotRaw(); err != nil {
		return err
	}
	f, err := f.normalize("Tag")
	if err != nil {
		return err
	}
	if err := b.command.checkFlag(f, "tag"); err != nil {
		return err
	}

	tag := &Tag{Flag: f}
	b.tags = append(b.tags, tag)
	b.byName[f.Name] = tag
	b.byLetter[f.Letter] = tag
	if f.Word != "" {
		b.byWord[f.Word] = tag
	}
	return nil
}

func (b *TagBuilder) Tags() []*Tag {
	return b.tags
}

func (b *TagBuilder) Count() int {
	return len(b.tags)
}
