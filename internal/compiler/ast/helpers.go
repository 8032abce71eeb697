package ast

// IntConst builds an integer Constant at the given location.
func IntConst(v int64, loc SourceLocation) *Constant {
	return &Constant{Kind: ConstInt, Int: v, Loc: loc}
}

// FloatConst builds a floating-point Constant at the given location.
func FloatConst(v float64, loc SourceLocation) *Constant {
	return &Constant{Kind: ConstFloat, Float: v, Loc: loc}
}

// BoolConst builds a boolean Constant at the given location.
func BoolConst(v bool, loc SourceLocation) *Constant {
	return &Constant{Kind: ConstBool, Bool: v, Loc: loc}
}

// StringConst builds a string Constant at the given location.
func StringConst(v string, loc SourceLocation) *Constant {
	return &Constant{Kind: ConstString, String: v, Loc: loc}
}

// NullConst builds the null Constant at the given location.
func NullConst(loc SourceLocation) *Constant {
	return &Constant{Kind: ConstNull, Loc: loc}
}
