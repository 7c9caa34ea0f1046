// Package ir generates names for the temporaries and labels that make up
// the compiler's textual three-address code, and defines the opcode
// vocabulary that code takes.
package ir

import "fmt"

// Generator hands out fresh temporary and label names. It replaces the
// original prototype's package-level mutable counters with a struct
// threaded explicitly through the parser, so that two compilations running
// in the same process never share counter state.
type Generator struct {
	temp      int
	loopLabel int
	ifLabel   int
}

// NewGenerator returns a Generator with all counters at zero.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewTemp returns the next "_tempN" name.
func (g *Generator) NewTemp() string {
	name := fmt.Sprintf("_temp%d", g.temp)
	g.temp++
	return name
}

// LoopLabels is the matched pair of labels bracketing a while loop.
type LoopLabels struct {
	Begin string
	End   string
}

// NewLoopLabels returns a fresh "loopbegin{N}" / "endloop_{N}" pair sharing
// the same N.
func (g *Generator) NewLoopLabels() LoopLabels {
	n := g.loopLabel
	g.loopLabel++
	return LoopLabels{
		Begin: fmt.Sprintf("loopbegin%d", n),
		End:   fmt.Sprintf("endloop_%d", n),
	}
}

// IfLabels is the set of labels for one if/else statement: where to jump
// when the condition holds, an else-branch label, and the statement's exit
// point. The parser's if/else translation emits only True and End; Else is
// generated but not referenced.
type IfLabels struct {
	True string
	Else string
	End  string
}

// NewIfLabels returns a fresh "iftrue{N}" / "else{N}" / "endif{N}" set
// sharing the same N.
func (g *Generator) NewIfLabels() IfLabels {
	n := g.ifLabel
	g.ifLabel++
	return IfLabels{
		True: fmt.Sprintf("iftrue%d", n),
		Else: fmt.Sprintf("else%d", n),
		End:  fmt.Sprintf("endif%d", n),
	}
}
