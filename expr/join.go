package expr

// Join returns the natural join of a and b: tapes shared by both operands must agree,
// tapes of only one operand pass through freely.
func Join(a, b Expr) Expr {
	at, bt := a.Tapes(), b.Tapes()
	return Intersect(Concat(a, Universe(bt.Minus(at))), Concat(b, Universe(at.Minus(bt))))
}

// Filter returns records of a also accepted by b. Unlike Join, tapes of a are never widened:
// only b is padded with tapes of a it lacks.
func Filter(a, b Expr) Expr {
	return Intersect(a, Concat(b, Universe(a.Tapes().Minus(b.Tapes()))))
}

// StartsWith returns records of a having a prefix accepted by b.
func StartsWith(a, b Expr) Expr {
	return Filter(a, Concat(b, Universe(b.Tapes())))
}

// EndsWith returns records of a having a suffix accepted by b.
func EndsWith(a, b Expr) Expr {
	return Filter(a, Concat(Universe(b.Tapes()), b))
}

// Contains returns records of a having a substring accepted by b.
func Contains(a, b Expr) Expr {
	u := Universe(b.Tapes())
	return Filter(a, Seq(u, b, u))
}
