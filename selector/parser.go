package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses selector strings back into validated fragments.
//
// Parsing rebuilds the selector through the Fragment append API, so the
// same duplicate and ordering rules apply: a string that could not have
// been produced by the builder is rejected with the same error taxonomy.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new selector parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("selector-parser")}
}

type token struct {
	tt   css.TokenType
	data string
}

// Parse parses a single selector, possibly containing combinators, and
// returns the equivalent fragment.
func (p *Parser) Parse(s string) (Fragment, error) {
	toks, err := lexSelector(s)
	if err != nil {
		return Fragment{}, err
	}
	p.log.Debug("Parsing selector", zap.String("selector", s), zap.Int("tokens", len(toks)))

	var st parseState
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t.tt {
		case css.WhitespaceToken:
			if !st.cur.Empty() || st.opSet {
				st.sawGap = true
			}
			i++

		case css.DelimToken:
			switch t.data {
			case ">", "+", "~":
				if err := st.combinator(t.data); err != nil {
					return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
				}
				i++
			case ".":
				if i+1 >= len(toks) || toks[i+1].tt != css.IdentToken {
					return Fragment{}, fmt.Errorf("invalid selector %q: class name expected after '.'", s)
				}
				if err := st.segment(func(f Fragment) (Fragment, error) {
					return f.AppendClass(toks[i+1].data)
				}); err != nil {
					return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
				}
				i += 2
			default:
				return Fragment{}, fmt.Errorf("invalid selector %q: unexpected %q", s, t.data)
			}

		case css.HashToken:
			if err := st.segment(func(f Fragment) (Fragment, error) {
				return f.AppendID(strings.TrimPrefix(t.data, "#"))
			}); err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			i++

		case css.IdentToken:
			if err := st.segment(func(f Fragment) (Fragment, error) {
				return f.AppendTag(t.data)
			}); err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			i++

		case css.ColonToken:
			element := i+1 < len(toks) && toks[i+1].tt == css.ColonToken
			j := i + 1
			if element {
				j++
			}
			name, next, err := pseudoName(toks, j)
			if err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			if err := st.segment(func(f Fragment) (Fragment, error) {
				if element {
					return f.AppendPseudoElement(name)
				}
				return f.AppendPseudoClass(name)
			}); err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			i = next

		case css.LeftBracketToken:
			spec, next, err := attributeSpec(toks, i+1)
			if err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			if err := st.segment(func(f Fragment) (Fragment, error) {
				return f.AppendAttribute(spec)
			}); err != nil {
				return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			i = next

		default:
			return Fragment{}, fmt.Errorf("invalid selector %q: unexpected %q", s, t.data)
		}
	}

	f, err := st.finish()
	if err != nil {
		return Fragment{}, fmt.Errorf("invalid selector %q: %w", s, err)
	}
	p.log.Debug("Parsed selector", zap.String("selector", s), zap.String("rendered", f.String()))
	return f, nil
}

// lexSelector tokenizes a selector string.
func lexSelector(s string) ([]token, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty selector")
	}

	l := css.NewLexer(parse.NewInput(strings.NewReader(s)))
	var toks []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("invalid selector %q: %w", s, err)
			}
			return toks, nil
		}
		toks = append(toks, token{tt: tt, data: string(data)})
	}
}

// pseudoName reads a pseudo-class or pseudo-element name starting at toks[i],
// including functional forms like nth-child(2). It returns the name and the
// index of the first unconsumed token.
func pseudoName(toks []token, i int) (string, int, error) {
	if i >= len(toks) {
		return "", 0, errors.New("pseudo name expected after ':'")
	}
	switch toks[i].tt {
	case css.IdentToken:
		return toks[i].data, i + 1, nil
	case css.FunctionToken:
		var sb strings.Builder
		sb.WriteString(toks[i].data)
		depth := 1
		i++
		for i < len(toks) && depth > 0 {
			switch toks[i].tt {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			sb.WriteString(toks[i].data)
			i++
		}
		if depth != 0 {
			return "", 0, errors.New("unbalanced parenthesis in pseudo function")
		}
		return sb.String(), i, nil
	default:
		return "", 0, fmt.Errorf("pseudo name expected, got %q", toks[i].data)
	}
}

// attributeSpec reads tokens until the closing bracket and returns the raw
// spec text between the brackets.
func attributeSpec(toks []token, i int) (string, int, error) {
	var sb strings.Builder
	for ; i < len(toks); i++ {
		if toks[i].tt == css.RightBracketToken {
			return sb.String(), i + 1, nil
		}
		sb.WriteString(toks[i].data)
	}
	return "", 0, errors.New("unterminated attribute selector")
}

// parseState folds compound selectors into an accumulated fragment,
// left-associative, joining consecutive compounds with the combinator seen
// between them (descendant when only whitespace separates them).
type parseState struct {
	acc    Fragment
	joinOp Combinator // joins acc with the compound being closed
	cur    Fragment
	sawGap bool // whitespace since cur last grew
	opSet  bool // explicit combinator seen at this gap
	op     Combinator
}

func (st *parseState) combinator(op string) error {
	if st.cur.Empty() && st.acc.Empty() {
		return fmt.Errorf("leading combinator %q", op)
	}
	if st.opSet {
		return fmt.Errorf("consecutive combinators")
	}
	c, err := ParseCombinator(op)
	if err != nil {
		return err
	}
	st.opSet, st.op = true, c
	st.sawGap = true
	return nil
}

// segment applies one append operation, closing the current compound first
// when a gap or combinator separates it from this segment.
func (st *parseState) segment(appendFn func(Fragment) (Fragment, error)) error {
	if (st.sawGap || st.opSet) && !st.cur.Empty() {
		if err := st.close(); err != nil {
			return err
		}
	}
	f, err := appendFn(st.cur)
	if err != nil {
		return err
	}
	st.cur = f
	st.sawGap = false
	return nil
}

func (st *parseState) close() error {
	if st.acc.Empty() {
		st.acc = st.cur
	} else {
		f, err := Combine(st.acc, st.joinOp, st.cur)
		if err != nil {
			return err
		}
		st.acc = f
	}
	if st.opSet {
		st.joinOp = st.op
	} else {
		st.joinOp = Descendant
	}
	st.cur = Fragment{}
	st.sawGap = false
	st.opSet = false
	return nil
}

func (st *parseState) finish() (Fragment, error) {
	if st.opSet {
		// opSet survives to the end only when no compound followed it.
		return Fragment{}, errors.New("trailing combinator")
	}
	if st.cur.Empty() && st.acc.Empty() {
		return Fragment{}, errors.New("empty selector")
	}
	if !st.cur.Empty() {
		if err := st.close(); err != nil {
			return Fragment{}, err
		}
	}
	return st.acc, nil
}
