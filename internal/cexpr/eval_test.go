package cexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	symbols := map[string]int64{
		"ZYDIS_MACHINE_MODE_REAL_16": 7,
		"ZYAN_NO_LIBC":               1,
	}
	lookup := func(name string) (int64, bool) {
		v, ok := symbols[name]
		return v, ok
	}

	tests := []struct {
		src  string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x10", 16},
		{"0X1fUL", 31},
		{"010", 8},
		{"-1", -1},
		{"~0", -1},
		{"!5", 0},
		{"1 << 4", 16},
		{"256 >> 2", 64},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"7 % 4 - 10 / 5", 1},
		{"1 | 2 | 8", 11},
		{"6 & 3", 2},
		{"6 ^ 3", 5},
		{"1 << 2 | 1", 5},
		{"ZYDIS_MACHINE_MODE_REAL_16", 7},
		{"ZYDIS_MACHINE_MODE_REAL_16 + 1", 8},
		{"ZYAN_BITS_TO_REPRESENT(ZYDIS_MACHINE_MODE_REAL_16)", 3},
		{"ZYAN_BITS_TO_REPRESENT(8)", 4},
		{"ZYAN_BITS_TO_REPRESENT(0)", 0},
		{"ZYAN_NEEDS_BIT(4, 2)", 1},
		{"ZYAN_NEEDS_BIT(4, 3)", 0},
		{"1 < 2", 1},
		{"2 <= 1", 0},
		{"3 >= 3", 1},
		{"1 == 1 && 2 != 3", 1},
		{"0 || 5", 1},
		{"0 && UNKNOWN_THING", 0},
		{"1 || UNKNOWN_THING", 1},
		{"1 << 2 == 4", 1},
		{"ZYAN_NO_LIBC > 0 && ZYDIS_MACHINE_MODE_REAL_16 == 7", 1},
	}

	e := New(lookup)
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := e.Eval(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	e := New(nil)

	_, err := e.Eval("UNKNOWN_THING")
	require.ErrorIs(t, err, ErrUnknownIdentifier)

	_, err = e.Eval("SOME_MACRO(1)")
	require.ErrorIs(t, err, ErrUnknownFunction)

	_, err = e.Eval("1 / 0")
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = e.Eval("1 +")
	require.Error(t, err)

	_, err = e.Eval("ZYAN_BITS_TO_REPRESENT(1, 2)")
	require.Error(t, err)

	_, err = e.Eval("defined(ZYAN_NO_LIBC)")
	require.ErrorIs(t, err, ErrDefinedOutsideIf)
}

func TestEvalDefined(t *testing.T) {
	macros := map[string]int64{"ZYAN_NO_LIBC": 1, "ZYDIS_LEVEL": 3}
	e := New(func(name string) (int64, bool) {
		return macros[name], true
	})
	e.Defined = func(name string) bool {
		_, ok := macros[name]
		return ok
	}

	tests := map[string]int64{
		"defined(ZYAN_NO_LIBC)":                   1,
		"defined ZYAN_NO_LIBC":                    1,
		"defined(ZYDIS_MINIMAL_MODE)":             0,
		"!defined(ZYDIS_MINIMAL_MODE)":            1,
		"defined(ZYDIS_LEVEL) && ZYDIS_LEVEL > 2": 1,
		"defined(ZYDIS_OTHER) || ZYDIS_OTHER":     0,
	}
	for src, want := range tests {
		got, err := e.Eval(src)
		require.NoError(t, err, src)
		require.Equal(t, want, got, src)
	}
}
