package gotemplate

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

const (
	// DefaultTagName is the tag registered by New unless WithTagName is used.
	DefaultTagName = "html5_input"

	// ResolverKey is the context variable the tag reads its resolver from.
	// Templates executed outside an Engine fall back to resolver.Default.
	ResolverKey = "html5input_resolver"
)

var (
	tagMu      sync.Mutex
	tagsLoaded = make(map[string]bool)
)

// RegisterTag installs the input tag under name. pongo2 keeps tags in a
// process-wide registry, so registering the same name twice is a no-op.
//
//	{% html5_input for="user.name" id="yourID" class="a b" required %}
func RegisterTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTagName
	}

	tagMu.Lock()
	defer tagMu.Unlock()

	if tagsLoaded[name] {
		return nil
	}
	if err := pongo2.RegisterTag(name, parseInputTag); err != nil {
		return fmt.Errorf("gotemplate: register tag %q: %w", name, err)
	}
	tagsLoaded[name] = true
	return nil
}

type tagArgument struct {
	name  string
	value pongo2.IEvaluator
	path  *pathValue
}

// pathValue is an argument written as a dotted variable path, optionally
// piped through filters. The path resolves like `for` does.
type pathValue struct {
	path    string
	filters []pathFilter
}

type pathFilter struct {
	token *pongo2.Token
	param *filterParam
}

// filterParam is either a literal or a dotted path.
type filterParam struct {
	literal *pongo2.Value
	path    string
}

type inputTagNode struct {
	position *pongo2.Token
	target   pongo2.IEvaluator
	args     []tagArgument
}

// parseInputTag accepts `key="literal"`, `key=expression` and bare `key`
// arguments. A `for` argument with a value is mandatory. Values written as
// a dotted path (`data-id=user.name|upper`) resolve through the resolver, so
// they match fields the same way `for` does; other expressions are
// evaluated by pongo2.
func parseInputTag(_ *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &inputTagNode{position: start}
	seen := make(map[string]bool)

	for arguments.Remaining() > 0 {
		keyToken := arguments.Current()
		name, perr := parseAttributeName(arguments)
		if perr != nil {
			return nil, perr
		}
		folded := strings.ToLower(name)
		if seen[folded] {
			return nil, arguments.Error(fmt.Sprintf("duplicate attribute %q", name), keyToken)
		}
		seen[folded] = true

		arg := tagArgument{name: name}
		if arguments.Match(pongo2.TokenSymbol, "=") != nil {
			if folded != resolver.ForAttribute {
				if path, width := scanPathValue(arguments); width > 0 {
					for _, f := range path.filters {
						if !pongo2.FilterExists(f.token.Val) {
							return nil, arguments.Error(fmt.Sprintf("filter '%s' does not exist", f.token.Val), f.token)
						}
					}
					arguments.ConsumeN(width)
					arg.path = path
					node.args = append(node.args, arg)
					continue
				}
			}
			expr, perr := arguments.ParseExpression()
			if perr != nil {
				return nil, perr
			}
			arg.value = expr
		}

		if folded == resolver.ForAttribute {
			if arg.value == nil {
				return nil, arguments.Error("'for' needs a field path value", keyToken)
			}
			node.target = arg.value
			continue
		}
		node.args = append(node.args, arg)
	}

	if node.target == nil {
		return nil, arguments.Error(fmt.Sprintf("tag '%s' requires a 'for' attribute", start.Val), start)
	}
	return node, nil
}

// parseAttributeName reads an attribute name, joining hyphenated and
// namespaced parts such as `data-id` or `aria-label` that pongo2 lexes as
// separate tokens.
func parseAttributeName(p *pongo2.Parser) (string, *pongo2.Error) {
	first := p.Current()
	if first == nil || !isNameToken(first) {
		return "", p.Error("expected an attribute name", first)
	}
	p.Consume()

	var sb strings.Builder
	sb.WriteString(first.Val)
	prev := first
	for {
		sep := p.Current()
		if sep == nil || sep.Typ != pongo2.TokenSymbol || (sep.Val != "-" && sep.Val != ":") || !adjacent(prev, sep) {
			break
		}
		part := p.GetR(1)
		if part == nil || !isNameToken(part) || !adjacent(sep, part) {
			break
		}
		p.Consume()
		p.Consume()
		sb.WriteString(sep.Val)
		sb.WriteString(part.Val)
		prev = part
	}
	return sb.String(), nil
}

// scanPathValue looks ahead for `a.b.c` followed by `|filter` or
// `|filter:param` steps, ending where the next attribute starts. It returns
// the number of tokens covered, or zero when the value is any other
// expression.
func scanPathValue(p *pongo2.Parser) (*pathValue, int) {
	path, n := scanPath(p, 0)
	if n == 0 {
		return nil, 0
	}
	value := &pathValue{path: path}

	for isSymbol(p.GetR(n), "|") {
		name := p.GetR(n + 1)
		if name == nil || name.Typ != pongo2.TokenIdentifier {
			return nil, 0
		}
		n += 2
		step := pathFilter{token: name}
		if isSymbol(p.GetR(n), ":") {
			param, width := scanFilterParam(p, n+1)
			if width == 0 {
				return nil, 0
			}
			step.param = param
			n += 1 + width
		}
		value.filters = append(value.filters, step)
	}

	if next := p.GetR(n); next != nil && (!isNameToken(next) || isOperator(next)) {
		return nil, 0
	}
	return value, n
}

func scanPath(p *pongo2.Parser, at int) (string, int) {
	first := p.GetR(at)
	if first == nil || first.Typ != pongo2.TokenIdentifier || first.Val == "nil" {
		return "", 0
	}
	parts := []string{first.Val}
	n := 1
	for isSymbol(p.GetR(at+n), ".") {
		part := p.GetR(at + n + 1)
		if part == nil || part.Typ != pongo2.TokenIdentifier {
			return "", 0
		}
		parts = append(parts, part.Val)
		n += 2
	}
	return strings.Join(parts, "."), n
}

func scanFilterParam(p *pongo2.Parser, at int) (*filterParam, int) {
	t := p.GetR(at)
	if t == nil {
		return nil, 0
	}
	switch t.Typ {
	case pongo2.TokenString:
		return &filterParam{literal: pongo2.AsValue(t.Val)}, 1
	case pongo2.TokenNumber:
		if isSymbol(p.GetR(at+1), ".") {
			frac := p.GetR(at + 2)
			if frac == nil || frac.Typ != pongo2.TokenNumber {
				return nil, 0
			}
			f, err := strconv.ParseFloat(t.Val+"."+frac.Val, 64)
			if err != nil {
				return nil, 0
			}
			return &filterParam{literal: pongo2.AsValue(f)}, 3
		}
		i, err := strconv.Atoi(t.Val)
		if err != nil {
			return nil, 0
		}
		return &filterParam{literal: pongo2.AsValue(i)}, 1
	case pongo2.TokenIdentifier:
		path, n := scanPath(p, at)
		if n == 0 {
			return nil, 0
		}
		return &filterParam{path: path}, n
	default:
		return nil, 0
	}
}

func isSymbol(t *pongo2.Token, val string) bool {
	return t != nil && t.Typ == pongo2.TokenSymbol && t.Val == val
}

func isOperator(t *pongo2.Token) bool {
	if t.Typ != pongo2.TokenKeyword {
		return false
	}
	switch t.Val {
	case "and", "or", "not", "in":
		return true
	default:
		return false
	}
}

func isNameToken(t *pongo2.Token) bool {
	switch t.Typ {
	case pongo2.TokenIdentifier, pongo2.TokenKeyword, pongo2.TokenNumber:
		return true
	default:
		return false
	}
}

func adjacent(a, b *pongo2.Token) bool {
	return a.Line == b.Line && a.Col+len(a.Val) == b.Col
}

func (node *inputTagNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	target, perr := node.target.Evaluate(ctx)
	if perr != nil {
		return perr
	}
	expr := ""
	if !target.IsNil() {
		expr = target.String()
	}

	r := resolverFrom(ctx)
	scope := contextScope{ctx: ctx}

	tag := attrs.New()
	for _, arg := range node.args {
		var (
			value *pongo2.Value
			perr  *pongo2.Error
		)
		switch {
		case arg.path != nil:
			value, perr = node.evaluatePath(ctx, r, scope, arg.path)
		case arg.value != nil:
			value, perr = arg.value.Evaluate(ctx)
		default:
			tag.SetBare(arg.name)
			continue
		}
		if perr != nil {
			return perr
		}
		if value.IsNil() {
			tag.SetBare(arg.name)
			continue
		}
		tag.Set(arg.name, valueString(value.Interface()))
	}

	if err := r.Write(writer, tag, expr, scope); err != nil {
		return node.fault(ctx, err)
	}
	return nil
}

func (node *inputTagNode) evaluatePath(ctx *pongo2.ExecutionContext, r *resolver.Resolver, scope resolver.Scope, pv *pathValue) (*pongo2.Value, *pongo2.Error) {
	value, err := resolvePath(r, scope, pv.path)
	if err != nil {
		return nil, node.fault(ctx, err)
	}
	out := pongo2.AsValue(value)
	for _, f := range pv.filters {
		var param *pongo2.Value
		if f.param != nil {
			param = f.param.literal
			if param == nil {
				raw, err := resolvePath(r, scope, f.param.path)
				if err != nil {
					return nil, node.fault(ctx, err)
				}
				param = pongo2.AsValue(raw)
			}
		}
		filtered, perr := pongo2.ApplyFilter(f.token.Val, out, param)
		if perr != nil {
			fault := ctx.Error(perr.Error(), f.token)
			fault.Sender = "filter:" + f.token.Val
			fault.OrigError = perr
			return nil, fault
		}
		out = filtered
	}
	return out, nil
}

// resolvePath returns the value at path, or nil when it does not resolve.
func resolvePath(r *resolver.Resolver, scope resolver.Scope, path string) (any, error) {
	res, err := r.Resolve(path, scope)
	if err != nil || !res.HasValue {
		return nil, err
	}
	return res.Value, nil
}

func (node *inputTagNode) fault(ctx *pongo2.ExecutionContext, err error) *pongo2.Error {
	fault := ctx.Error(err.Error(), node.position)
	fault.Sender = "tag:" + node.position.Val
	fault.OrigError = err
	return fault
}

func resolverFrom(ctx *pongo2.ExecutionContext) *resolver.Resolver {
	if r, ok := ctx.Public[ResolverKey].(*resolver.Resolver); ok && r != nil {
		return r
	}
	return resolver.Default()
}

func valueString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// contextScope resolves root variables from the template context. Private
// entries (loop and `with` variables) shadow public data.
type contextScope struct {
	ctx *pongo2.ExecutionContext
}

func (s contextScope) Lookup(name string) (any, bool) {
	for _, vars := range []pongo2.Context{s.ctx.Private, s.ctx.Public} {
		value, ok := vars[name]
		if !ok {
			continue
		}
		if wrapped, ok := value.(*pongo2.Value); ok {
			return wrapped.Interface(), true
		}
		return value, true
	}
	return nil, false
}
