// Package cexpr evaluates the integer constant expressions found in C enum
// initializers.
package cexpr

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var (
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrUnknownFunction   = errors.New("unknown function-like macro")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrDefinedOutsideIf  = errors.New("defined outside a preprocessor condition")
)

// Func implements a function-like macro over evaluated arguments.
type Func func(args []int64) (int64, error)

// Evaluator evaluates expressions against a symbol lookup.
type Evaluator struct {
	// Lookup resolves identifiers (enumerators, object-like macros).
	Lookup func(name string) (int64, bool)
	Funcs  map[string]Func

	// Defined answers defined(NAME). Only set for #if conditions.
	Defined func(name string) bool
}

// Builtins are the Zycore helper macros used in enum initializers.
var Builtins = map[string]Func{
	// ZYAN_BITS_TO_REPRESENT(n) counts the bits needed for n; 0 needs none.
	"ZYAN_BITS_TO_REPRESENT": func(args []int64) (int64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("ZYAN_BITS_TO_REPRESENT takes 1 argument, got %d", len(args))
		}
		return int64(bits.Len64(uint64(args[0]))), nil
	},
	"ZYAN_NEEDS_BIT": func(args []int64) (int64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("ZYAN_NEEDS_BIT takes 2 arguments, got %d", len(args))
		}
		if uint64(args[0])>>uint64(args[1]) > 0 {
			return 1, nil
		}
		return 0, nil
	},
}

// New returns an evaluator using lookup and the builtin macros.
func New(lookup func(name string) (int64, bool)) *Evaluator {
	return &Evaluator{Lookup: lookup, Funcs: Builtins}
}

// Eval parses and evaluates src.
func (e *Evaluator) Eval(src string) (int64, error) {
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", src, err)
	}
	return e.expression(expr)
}

func (e *Evaluator) expression(x *Expression) (int64, error) {
	return e.logicalOr(x.Or)
}

// logicalOr and logicalAnd short-circuit like C: the right operand is not
// evaluated once the result is known.
func (e *Evaluator) logicalOr(x *LogicalOr) (int64, error) {
	v, err := e.logicalAnd(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		if v != 0 {
			return 1, nil
		}
		if v, err = e.logicalAnd(r); err != nil {
			return 0, err
		}
	}
	if len(x.Right) > 0 {
		return truth(v != 0), nil
	}
	return v, nil
}

func (e *Evaluator) logicalAnd(x *LogicalAnd) (int64, error) {
	v, err := e.bitOr(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		if v == 0 {
			return 0, nil
		}
		if v, err = e.bitOr(r); err != nil {
			return 0, err
		}
	}
	if len(x.Right) > 0 {
		return truth(v != 0), nil
	}
	return v, nil
}

func (e *Evaluator) bitOr(x *BitOr) (int64, error) {
	v, err := e.bitXor(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		rv, err := e.bitXor(r)
		if err != nil {
			return 0, err
		}
		v |= rv
	}
	return v, nil
}

func (e *Evaluator) bitXor(x *BitXor) (int64, error) {
	v, err := e.bitAnd(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		rv, err := e.bitAnd(r)
		if err != nil {
			return 0, err
		}
		v ^= rv
	}
	return v, nil
}

func (e *Evaluator) bitAnd(x *BitAnd) (int64, error) {
	v, err := e.equality(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		rv, err := e.equality(r)
		if err != nil {
			return 0, err
		}
		v &= rv
	}
	return v, nil
}

func (e *Evaluator) equality(x *Equality) (int64, error) {
	v, err := e.relational(x.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range x.Ops {
		rv, err := e.relational(op.Right)
		if err != nil {
			return 0, err
		}
		if op.Op == "==" {
			v = truth(v == rv)
		} else {
			v = truth(v != rv)
		}
	}
	return v, nil
}

func (e *Evaluator) relational(x *Relational) (int64, error) {
	v, err := e.shift(x.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range x.Ops {
		rv, err := e.shift(op.Right)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "<":
			v = truth(v < rv)
		case ">":
			v = truth(v > rv)
		case "<=":
			v = truth(v <= rv)
		case ">=":
			v = truth(v >= rv)
		}
	}
	return v, nil
}

func (e *Evaluator) shift(x *Shift) (int64, error) {
	v, err := e.additive(x.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range x.Ops {
		rv, err := e.additive(op.Right)
		if err != nil {
			return 0, err
		}
		if rv < 0 || rv > 63 {
			return 0, fmt.Errorf("shift count %d out of range", rv)
		}
		if op.Op == "<<" {
			v <<= uint(rv)
		} else {
			v >>= uint(rv)
		}
	}
	return v, nil
}

func (e *Evaluator) additive(x *Additive) (int64, error) {
	v, err := e.multiplicative(x.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range x.Ops {
		rv, err := e.multiplicative(op.Right)
		if err != nil {
			return 0, err
		}
		if op.Op == "+" {
			v += rv
		} else {
			v -= rv
		}
	}
	return v, nil
}

func (e *Evaluator) multiplicative(x *Multiplicative) (int64, error) {
	v, err := e.unary(x.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range x.Ops {
		rv, err := e.unary(op.Right)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "*":
			v *= rv
		case "/", "%":
			if rv == 0 {
				return 0, ErrDivisionByZero
			}
			if op.Op == "/" {
				v /= rv
			} else {
				v %= rv
			}
		}
	}
	return v, nil
}

func (e *Evaluator) unary(x *Unary) (int64, error) {
	if x.Primary != nil {
		return e.primary(x.Primary)
	}
	v, err := e.unary(x.Operand)
	if err != nil {
		return 0, err
	}
	switch x.Op {
	case "-":
		return -v, nil
	case "~":
		return ^v, nil
	case "!":
		return truth(v == 0), nil
	}
	return v, nil
}

func (e *Evaluator) primary(x *Primary) (int64, error) {
	switch {
	case x.Defined != nil:
		if e.Defined == nil {
			return 0, fmt.Errorf("%w: %s", ErrDefinedOutsideIf, x.Defined.Name)
		}
		return truth(e.Defined(x.Defined.Name)), nil
	case x.Number != nil:
		return parseInt(*x.Number)
	case x.Call != nil:
		fn, ok := e.Funcs[x.Call.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, x.Call.Name)
		}
		args := make([]int64, len(x.Call.Args))
		for i, a := range x.Call.Args {
			v, err := e.expression(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn(args)
	case x.Ident != nil:
		if e.Lookup != nil {
			if v, ok := e.Lookup(*x.Ident); ok {
				return v, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrUnknownIdentifier, *x.Ident)
	default:
		return e.expression(x.Sub)
	}
}

// parseInt parses a C integer literal, ignoring u/l suffixes.
func parseInt(lit string) (int64, error) {
	lit = strings.TrimRight(lit, "uUlL")
	u, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", lit, err)
	}
	return int64(u), nil
}

func truth(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
