package cli

import (
	"context"
	"strings"
)

// Func is the body of an executable command.
type Func func(ctx context.Context, c Caller, p Params) error

// Command is a node of the command tree. Only commands with a Func can take parameters.
type Command struct {
	name        string
	description string
	path        string
	parent      *Command
	fn          Func

	arguments   *ArgumentBuilder
	options     *OptionBuilder
	tags        *TagBuilder
	permissions *PermissionBuilder

	subCommands map[string]*Command
	order       []string
}

func newCommand(name, description, path string, parent *Command, fn Func) (*Command, error) {
	if err := ValidateCommandName(name); err != nil {
		return nil, prefixed(err, "Command name")
	}
	c := &Command{
		name:        name,
		description: description,
		path:        path,
		parent:      parent,
		fn:          fn,
		permissions: &PermissionBuilder{},
		subCommands: map[string]*Command{},
	}
	c.arguments = newArgumentBuilder(c)
	c.options = newOptionBuilder(c)
	c.tags = newTagBuilder(c)
	return c, nil
}

func (c *Command) Name() string        { return c.name }
func (c *Command) Description() string { return c.description }

// Path is the space separated chain of names used to invoke the command.
func (c *Command) Path() string    { return c.path }
func (c *Command) Parent() *Command { return c.parent }
func (c *Command) Executable() bool { return c.fn != nil }

func (c *Command) Arguments() *ArgumentBuilder     { return c.arguments }
func (c *Command) Options() *OptionBuilder         { return c.options }
func (c *Command) Permissions() *PermissionBuilder { return c.permissions }

// Tag adds a boolean parameter.
func (c *Command) Tag(f Flag) error {
	return c.tags.add(f)
}

func (c *Command) Tags() *TagBuilder { return c.tags }

func (c *Command) Permission(p Permission) error {
	return c.permissions.Add(p)
}

// Command adds a sub command. fn may be nil for pure grouping commands.
func (c *Command) Command(name, description string, fn Func) (*Command, error) {
	if c.arguments.FirstIsText() {
		return nil, newError(AmbiguousParameterError, "Cannot add sub commands to '%s' as its first argument can contain text", c.path)
	}
	path := name
	if c.path != "" {
		path = c.path + " " + name
	}
	sub, err := newCommand(name, description, path, c, fn)
	if err != nil {
		return nil, err
	}
	if _, ok := c.subCommands[name]; ok {
		return nil, newError(CommandExistsError, "'%s' already exists", path)
	}
	c.subCommands[name] = sub
	c.order = append(c.order, name)
	return sub, nil
}

// SubCommands returns the sub commands in registration order.
func (c *Command) SubCommands() []*Command {
	subs := make([]*Command, 0, len(c.order))
	for _, name := range c.order {
		subs = append(subs, c.subCommands[name])
	}
	return subs
}

func (c *Command) SubCommand(name string) (*Command, bool) {
	sub, ok := c.subCommands[name]
	return sub, ok
}

func (c *Command) checkName(name, kind string) error {
	owner := ""
	if _, ok := c.arguments.byName[name]; ok {
		owner = "argument"
	} else if _, ok := c.options.byName[name]; ok {
		owner = "option"
	} else if _, ok := c.tags.byName[name]; ok {
		owner = "tag"
	}
	if owner == "" {
		return nil
	}
	return newError(NameInUseError, "%s name '%s' is already used by %s", capitalize(kind), name, describeOwner(kind, owner))
}

func (c *Command) checkFlag(f Flag, kind string) error {
	if err := c.checkName(f.Name, kind); err != nil {
		return err
	}
	if _, ok := c.options.byLetter[f.Letter]; ok {
		return newError(LetterInUseError, "%s letter '%s' is already used by %s", capitalize(kind), f.Letter, describeOwner(kind, "option"))
	}
	if _, ok := c.tags.byLetter[f.Letter]; ok {
		return newError(LetterInUseError, "%s letter '%s' is already used by %s", capitalize(kind), f.Letter, describeOwner(kind, "tag"))
	}
	if f.Word == "" {
		return nil
	}
	if _, ok := c.options.byWord[f.Word]; ok {
		return newError(WordInUseError, "%s word '%s' is already used by %s", capitalize(kind), f.Word, describeOwner(kind, "option"))
	}
	if _, ok := c.tags.byWord[f.Word]; ok {
		return newError(WordInUseError, "%s word '%s' is already used by %s", capitalize(kind), f.Word, describeOwner(kind, "tag"))
	}
	return nil
}

func describeOwner(kind, owner string) string {
	if kind == owner {
		return "another " + owner
	}
	if owner == "argument" || owner == "option" {
		return "an " + owner
	}
	return "a " + owner
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// resolve walks the tree along the leading tokens that name sub commands and returns
// the deepest command reached with the tokens left over.
func (c *Command) resolve(ctx context.Context, caller Caller, tokens []string) (*Command, []string, error) {
	cmd := c
	for len(tokens) > 0 {
		sub, ok := cmd.subCommands[tokens[0]]
		if !ok {
			break
		}
		allowed, err := sub.permissions.Evaluate(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		if !allowed {
			return nil, nil, newError(InsufficientPermissionsError, "Insufficient permissions")
		}
		cmd, tokens = sub, tokens[1:]
	}
	return cmd, tokens, nil
}

// Execute binds tokens to the parameters of c and runs its function. A raw argument
// gets the tokens joined by spaces.
func (c *Command) Execute(ctx context.Context, caller Caller, tokens []string) error {
	return c.execute(ctx, caller, tokens, strings.Join(tokens, " "))
}

func (c *Command) execute(ctx context.Context, caller Caller, tokens []string, raw string) error {
	if c.fn == nil {
		return newError(NotExecutableError, "No function is associated with '%s'", c.path)
	}
	params, err := c.bind(tokens, raw)
	if err != nil {
		return err
	}
	return c.fn(ctx, caller, params)
}

func (c *Command) parameterCount() int {
	return c.arguments.Count() + c.options.Count() + c.tags.Count()
}

func (c *Command) checkNotRaw() error {
	if c.arguments.raw != nil {
		return newError(CannotAddParametersError, "A raw argument must be the only parameter of '%s'", c.path)
	}
	return nil
}

type symbolKind int

const (
	plainSymbol symbolKind = iota
	optionSymbol
	tagSymbol
)

type symbol struct {
	kind symbolKind
	// name of the option or tag, the raw token for plain symbols
	value string
}

// isPlain reports whether a token starting with a dash is still a value: a bare dash
// or a negative number.
func isPlain(token string) bool {
	if !strings.HasPrefix(token, "-") || token == "-" {
		return true
	}
	return token[1] >= '0' && token[1] <= '9'
}

func (c *Command) symbolize(tokens []string) ([]symbol, error) {
	var result []symbol
	for _, token := range tokens {
		switch {
		case isPlain(token):
			result = append(result, symbol{plainSymbol, token})

		case strings.HasPrefix(token, "--"):
			word := strings.TrimPrefix(token, "--")
			if opt, ok := c.options.byWord[word]; ok {
				result = append(result, symbol{optionSymbol, opt.Name})
			} else if tag, ok := c.tags.byWord[word]; ok {
				result = append(result, symbol{tagSymbol, tag.Name})
			} else {
				return nil, newError(UnexpectedWordError, "'%s' has no option or tag associated with --%s", c.path, word)
			}

		default:
			letters := strings.TrimPrefix(token, "-")
			if opt, ok := c.options.byLetter[letters]; ok {
				result = append(result, symbol{optionSymbol, opt.Name})
				continue
			}
			for _, r := range letters {
				tag, ok := c.tags.byLetter[string(r)]
				if !ok {
					return nil, newError(UnexpectedLetterError, "'%s' has no option or tag associated with -%c", c.path, r)
				}
				result = append(result, symbol{tagSymbol, tag.Name})
			}
		}
	}
	return result, nil
}

func (c *Command) bindArguments(symbols []symbol, params Params) error {
	args := c.arguments.arguments
	bound := 0
	for i := 0; i < len(symbols); {
		switch symbols[i].kind {
		case optionSymbol:
			i += 2
			continue
		case tagSymbol:
			i++
			continue
		}
		if bound == len(args) {
			return newError(UnexpectedArgumentError, "'%s' only expected %d arguments", c.path, len(args))
		}
		value, err := args[bound].Parse(symbols[i].value)
		if err != nil {
			return prefixed(err, "%s", args[bound].Name)
		}
		params[args[bound].Name] = value
		bound++
		i++
	}
	if bound != len(args) {
		return newError(ExpectedArgumentsError, "'%s' expected %d arguments, got %d", c.path, len(args), bound)
	}
	return nil
}

func (c *Command) bindOptions(symbols []symbol, params Params) error {
	for _, opt := range c.options.options {
		params[opt.Name] = nil
	}
	for i := 0; i < len(symbols); i++ {
		if symbols[i].kind != optionSymbol {
			continue
		}
		opt := c.options.byName[symbols[i].value]
		i++
		if i == len(symbols) || symbols[i].kind != plainSymbol {
			return newError(InvalidOptionError, "Option '%s' requires a value", opt.Name)
		}
		value, err := opt.Parse(symbols[i].value)
		if err != nil {
			return prefixed(err, "%s", opt.Name)
		}
		params[opt.Name] = value
	}
	return nil
}

func (c *Command) bindTags(symbols []symbol, params Params) {
	for _, tag := range c.tags.tags {
		params[tag.Name] = false
	}
	for _, s := range symbols {
		if s.kind == tagSymbol {
			params[s.value] = true
		}
	}
}

// ParseParams turns the parameter tokens of an invocation into named values.
func (c *Command) ParseParams(tokens []string) (Params, error) {
	return c.bind(tokens, strings.Join(tokens, " "))
}

func (c *Command) bind(tokens []string, raw string) (Params, error) {
	if arg := c.arguments.raw; arg != nil {
		return Params{arg.Name: raw}, nil
	}
	symbols, err := c.symbolize(tokens)
	if err != nil {
		return nil, err
	}
	params := Params{}
	if err := c.bindArguments(symbols, params); err != nil {
		return nil, err
	}
	if err := c.bindOptions(symbols, params); err != nil {
		return nil, err
	}
	c.bindTags(symbols, params)
	return params, nil
}

// TreeString draws c and everything below it. With details every command also lists
// its arguments, options, tags and permissions.
func (c *Command) TreeString(details bool) string {
	var sb strings.Builder
	c.writeTree(&sb, details, "", true)
	return sb.String()
}

func (c *Command) writeTree(sb *strings.Builder, details bool, prefix string, includeName bool) {
	if includeName {
		sb.WriteString(prefix + "+ " + c.name + "\n")
	}

	detailPrefix := prefix + "  "
	if len(c.order) != 0 {
		detailPrefix = prefix + "| "
	}
	if details {
		section := func(title string, lines []string) {
			if len(lines) == 0 {
				return
			}
			sb.WriteString(detailPrefix + title + ":\n")
			for _, line := range lines {
				sb.WriteString(detailPrefix + "  " + line + "\n")
			}
		}
		section("Arguments", stringsOf(c.arguments.arguments))
		section("Options", stringsOf(c.options.options))
		section("Tags", stringsOf(c.tags.tags))
		section("Permissions", stringsOf(c.permissions.permissions))
	}

	for i, name := range c.order {
		sb.WriteString(prefix + "| \n" + prefix + "+-+ " + name + "\n")
		subPrefix := prefix + "  "
		if i < len(c.order)-1 {
			subPrefix = prefix + "| "
		}
		c.subCommands[name].writeTree(sb, details, subPrefix, false)
	}
}

func stringsOf[T interface{ String() string }](items []T) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.String())
	}
	return lines
}

// Usage describes how to invoke c. Sub commands the caller may not run are left out.
func (c *Command) Usage(ctx context.Context, caller Caller) (string, error) {
	var params []string
	if c.arguments.Count() != 0 {
		names := make([]string, 0, c.arguments.Count())
		for _, arg := range c.arguments.arguments {
			names = append(names, "<"+arg.Name+">")
		}
		params = append(params, strings.Join(names, " "))
	}
	if c.options.Count() != 0 {
		params = append(params, "[OPTIONS]")
	}
	if c.tags.Count() != 0 {
		params = append(params, "[TAGS]")
	}

	lines := []string{strings.TrimSpace("Usage: " + c.path + " " + strings.Join(params, " "))}
	if c.description != "" {
		lines = append(lines, c.description)
	}
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, title+":")
		for _, item := range items {
			lines = append(lines, "  "+item)
		}
	}
	section("Arguments", stringsOf(c.arguments.arguments))
	section("Options", stringsOf(c.options.options))
	section("Tags", stringsOf(c.tags.tags))

	var visible []string
	for _, sub := range c.SubCommands() {
		allowed, err := sub.permissions.Evaluate(ctx, caller)
		if err != nil {
			return "", err
		}
		if allowed {
			visible = append(visible, sub.name)
		}
	}
	section("Subcommands", visible)

	return strings.Join(lines, "\n"), nil
}
