package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every draw and every expression roll is
// logged at debug level. Roller itself satisfies Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice.NewLoggedRoller: src and logger must not be nil")
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the draw.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	fields := []zap.Field{zap.Int("n", n), zap.Int("value", v)}
	if s, ok := r.src.(*Stream); ok {
		fields = append(fields, zap.Uint64("cursor", s.Cursor()))
	}
	r.logger.Debug("rng draw", fields...)
	return v
}

// Roll evaluates expr and logs the result.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
