// Package expr parses and evaluates WHERE clauses.
//
// The clause language is deliberately small: comparisons of a column against
// a literal, combined with AND and OR. The clause is split on the first OR
// before AND is considered at all, so OR is always the outermost operator:
//
//	a = 1 AND b = 2 OR c = 3   =>   (a = 1 AND b = 2) OR (c = 3)
//	a = 1 OR b = 2 AND c = 3   =>   (a = 1) OR (b = 2 AND c = 3)
//
// Comparisons are made on the text rendering of the column value, so
// ordering operators compare strings byte by byte ("10" < "9").
package expr

import (
	"fmt"
	"strings"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// Kind is the type of a filter tree node.
type Kind int

const (
	KindCondition Kind = iota
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "AND"
	case KindOr:
		return "OR"
	default:
		return "CONDITION"
	}
}

// Op is a comparison operator.
type Op string

const (
	OpEq Op = "="
	OpNe Op = "!="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// operators in match order: at a given position the two character forms
// win over their one character prefixes.
var operators = []struct {
	text string
	op   Op
}{
	{"<=", OpLe},
	{">=", OpGe},
	{"<>", OpNe},
	{"!=", OpNe},
	{"=", OpEq},
	{"<", OpLt},
	{">", OpGt},
}

// Condition compares one column with a literal.
type Condition struct {
	Column  string
	Op      Op
	Literal string
}

// Node is a filter tree node. Condition nodes use Cond; And and Or nodes use
// Left and Right.
type Node struct {
	Kind  Kind
	Left  *Node
	Right *Node
	Cond  Condition
}

// Parse parses a WHERE clause.
func Parse(clause string) (*Node, error) {
	s := unwrap(strings.TrimSpace(clause))
	if s == "" {
		return nil, liteerrors.NewInvalidQuery("WHERE clause", clause, "empty expression")
	}

	for _, kw := range []struct {
		sep  string
		kind Kind
	}{{" OR ", KindOr}, {" AND ", KindAnd}} {
		left, right, ok := cutToken(s, kw.sep)
		if !ok {
			continue
		}
		l, err := Parse(left)
		if err != nil {
			return nil, err
		}
		r, err := Parse(right)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: kw.kind, Left: l, Right: r}, nil
	}

	cond, err := parseCondition(s)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindCondition, Cond: cond}, nil
}

// parseCondition splits s at its leftmost comparison operator.
func parseCondition(s string) (Condition, error) {
	for i := 0; i < len(s); i++ {
		for _, o := range operators {
			if !strings.HasPrefix(s[i:], o.text) {
				continue
			}
			column := strings.TrimSpace(s[:i])
			literal := strings.TrimSpace(s[i+len(o.text):])
			if column == "" || literal == "" {
				return Condition{}, liteerrors.NewInvalidQuery("WHERE condition", s, "missing operand")
			}
			return Condition{Column: unquote(column), Op: o.op, Literal: unquote(literal)}, nil
		}
	}
	return Condition{}, liteerrors.NewInvalidQuery("WHERE condition", s, "no comparison operator")
}

// cutToken is strings.Cut that skips sep inside quoted literals. The
// separator matches case-sensitively. Both halves are returned; neither is
// dropped when the other is empty.
func cutToken(s, sep string) (before, after string, found bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case strings.HasPrefix(s[i:], sep):
			return s[:i], s[i+len(sep):], true
		}
	}
	return s, "", false
}

// unwrap removes parentheses that enclose the whole expression.
func unwrap(s string) string {
	for len(s) >= 2 && s[0] == '(' && matchingParen(s) == len(s)-1 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// matchingParen returns the index of the parenthesis closing s[0], or -1.
func matchingParen(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// unquote removes one pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], string([]byte{q, q}), string(q))
}

// Columns returns the columns the tree refers to, in order of appearance.
func (n *Node) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	n.walk(func(c Condition) {
		if !seen[c.Column] {
			seen[c.Column] = true
			cols = append(cols, c.Column)
		}
	})
	return cols
}

func (n *Node) walk(fn func(Condition)) {
	switch n.Kind {
	case KindCondition:
		fn(n.Cond)
	default:
		n.Left.walk(fn)
		n.Right.walk(fn)
	}
}

func (n *Node) String() string {
	switch n.Kind {
	case KindCondition:
		return fmt.Sprintf("%s %s %q", n.Cond.Column, n.Cond.Op, n.Cond.Literal)
	default:
		return fmt.Sprintf("(%s %s %s)", n.Left, n.Kind, n.Right)
	}
}
