package css

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
)

// Declaration is one `property: value` pair.
type Declaration struct {
	Property  string // lower case
	Value     string
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// Rule is a rule set. Order is the position of the rule
// in its style sheet.
type Rule struct {
	Selectors SelectorList
	Decls     []Declaration
	Order     int
}

// Stylesheet is the content of a <style> element.
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses the rule sets of `src`.
// At-rules are skipped, as are the rule sets nested inside them.
func ParseStylesheet(src string) (*Stylesheet, error) {
	p := cssparse.NewParser(parse.NewInputString(src), false)
	var (
		out     Stylesheet
		current *Rule
		atDepth int
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case cssparse.ErrorGrammar:
			if p.HasParseError() {
				return nil, p.Err()
			}
			if err := p.Err(); err != io.EOF {
				return nil, err
			}
			if current != nil {
				return nil, fmt.Errorf("unterminated rule set %s", current.Selectors)
			}
			return &out, nil
		case cssparse.BeginAtRuleGrammar:
			atDepth++
		case cssparse.EndAtRuleGrammar:
			atDepth--
		case cssparse.BeginRulesetGrammar:
			if atDepth > 0 {
				continue
			}
			prelude := joinTokens(p.Values())
			selectors, err := ParseSelectorList(prelude)
			if err != nil {
				return nil, fmt.Errorf("invalid selector %q: %w", prelude, err)
			}
			current = &Rule{Selectors: selectors, Order: len(out.Rules)}
		case cssparse.EndRulesetGrammar:
			if atDepth > 0 || current == nil {
				continue
			}
			out.Rules = append(out.Rules, *current)
			current = nil
		case cssparse.DeclarationGrammar:
			if atDepth > 0 || current == nil {
				continue
			}
			current.Decls = append(current.Decls, newDeclaration(data, p.Values()))
		}
	}
}

// ParseDeclarations parses an inline style attribute, made of
// `name: value` pairs separated by semicolons.
func ParseDeclarations(s string) ([]Declaration, error) {
	p := cssparse.NewParser(parse.NewInputString(s), true)
	var out []Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case cssparse.ErrorGrammar:
			if p.HasParseError() {
				return nil, p.Err()
			}
			if err := p.Err(); err != io.EOF {
				return nil, err
			}
			return out, nil
		case cssparse.DeclarationGrammar:
			out = append(out, newDeclaration(data, p.Values()))
		}
	}
}

func newDeclaration(name []byte, values []cssparse.Token) Declaration {
	out := Declaration{Property: string(name)}
	values = trimWhitespace(values)
	if n := len(values); n >= 2 && values[n-2].TokenType == cssparse.DelimToken && string(values[n-2].Data) == "!" &&
		values[n-1].TokenType == cssparse.IdentToken && strings.EqualFold(string(values[n-1].Data), "important") {
		out.Important = true
		values = trimWhitespace(values[:n-2])
	}
	out.Value = joinTokens(values)
	return out
}

func trimWhitespace(tokens []cssparse.Token) []cssparse.Token {
	for len(tokens) > 0 && tokens[0].TokenType == cssparse.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == cssparse.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func joinTokens(tokens []cssparse.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.Write(tok.Data)
	}
	return b.String()
}
