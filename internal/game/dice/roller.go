package dice

// Roll evaluates expr using src. Constant expressions consume no draws;
// ranges consume one draw; dice forms consume one draw per die.
//
// Precondition: expr must come from Parse; src must be non-nil unless expr is constant.
// Postcondition: expr.Min <= result.Total() <= expr.Max.
func Roll(expr Expression, src Source) RollResult {
	switch {
	case expr.Count > 0:
		rolled := make([]int, expr.Count)
		for i := range rolled {
			rolled[i] = src.Intn(expr.Sides) + 1
		}
		return RollResult{Expression: expr.Raw, Dice: rolled, Modifier: expr.Modifier}
	case expr.Min == expr.Max:
		return RollResult{Expression: expr.Raw, Modifier: expr.Min}
	default:
		v := src.Intn(expr.Max-expr.Min+1) + expr.Min
		return RollResult{Expression: expr.Raw, Dice: []int{v}}
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// MustParse parses expr and panics on error. Used for package-level tables.
//
// Precondition: expr must be a valid expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
