package expr

// Row gives the filter access to the text of a row's columns. Lookup of a
// column the row does not have must fail with a column-not-found error.
type Row interface {
	Lookup(column string) (string, error)
}

// Eval reports whether row satisfies the tree. And and Or short-circuit.
func (n *Node) Eval(row Row) (bool, error) {
	switch n.Kind {
	case KindAnd:
		ok, err := n.Left.Eval(row)
		if err != nil || !ok {
			return false, err
		}
		return n.Right.Eval(row)
	case KindOr:
		ok, err := n.Left.Eval(row)
		if err != nil || ok {
			return ok, err
		}
		return n.Right.Eval(row)
	default:
		v, err := row.Lookup(n.Cond.Column)
		if err != nil {
			return false, err
		}
		return compare(v, n.Cond.Op, n.Cond.Literal), nil
	}
}

func compare(v string, op Op, literal string) bool {
	switch op {
	case OpEq:
		return v == literal
	case OpNe:
		return v != literal
	case OpLt:
		return v < literal
	case OpLe:
		return v <= literal
	case OpGt:
		return v > literal
	case OpGe:
		return v >= literal
	default:
		return false
	}
}
