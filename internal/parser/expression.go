package parser

// Expression is the value produced by any grammar rule that yields a
// value: accumulated IR text that computes it, plus the operand name a
// caller uses to refer to the result (a literal, an identifier, or a
// generated temporary).
type Expression struct {
	Code string
	Name string
}
