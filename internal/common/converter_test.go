package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t *testing.T, profile TargetProfile) *Converter {
	t.Helper()
	c, err := NewConverter(DefaultConfig(), profile)
	require.NoError(t, err)
	return c
}

func rawEnum(name string, members ...string) RawEnum {
	e := RawEnum{QualifiedName: name}
	for i, m := range members {
		e.Members = append(e.Members, RawMember{QualifiedName: m, Value: int64(i)})
	}
	return e
}

func TestClassify(t *testing.T) {
	rust := TargetProfile{MaxValue: MaxValueConstant, Reserved: Set()}
	py := TargetProfile{MaxValue: MaxValueSuppress, Reserved: Set("IF")}
	pxd := TargetProfile{MaxValue: MaxValueKeep, QualifiedNames: true}
	ocaml := TargetProfile{MaxValue: MaxValueSuppress, SuppressLeadingNone: true}

	tests := []struct {
		name     string
		profile  TargetProfile
		stripped string
		enum     string
		ordinal  int
		want     Classification
	}{
		{"required bits", rust, "REQUIRED_BITS", "Foo", 2, Classification{Action: Suppress}},
		{"required bits pxd", pxd, "REQUIRED_BITS", "Foo", 2, Classification{Action: Suppress}},
		{"max value constant", rust, "MAX_VALUE", "Foo", 2, Classification{Action: Constant}},
		{"max value padding", rust, "MAX_VALUE", "Padding", 2, Classification{Action: Suppress}},
		{"max value suppressed", py, "MAX_VALUE", "Foo", 2, Classification{Action: Suppress}},
		{"max value kept", pxd, "MAX_VALUE", "Foo", 2, Classification{Action: Keep}},
		{"leading none", ocaml, "NONE", "Foo", 0, Classification{Action: Suppress}},
		{"later none", ocaml, "NONE", "Foo", 1, Classification{Action: Keep}},
		{"none elsewhere", rust, "NONE", "Foo", 0, Classification{Action: Keep}},
		{"digit", rust, "1", "Foo", 0, Classification{Action: Keep, Escape: true}},
		{"reserved", py, "IF", "Foo", 3, Classification{Action: Keep, Escape: true}},
		{"not reserved here", rust, "IF", "Foo", 3, Classification{Action: Keep}},
		{"plain", rust, "LONG_64", "Foo", 0, Classification{Action: Keep}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter(t, tt.profile)
			assert.Equal(t, tt.want, c.Classify(tt.stripped, tt.enum, tt.ordinal))
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := rawEnum("ZydisFoo_", "ZYDIS_FOO_A", "ZYDIS_FOO_B", "ZYDIS_FOO_REQUIRED_BITS")
	raw.Doc = "Foo doc."

	c := newTestConverter(t, TargetProfile{MaxValue: MaxValueConstant, Casing: CasingPreserve})
	e, err := c.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Foo", e.Name)
	assert.Equal(t, "ZydisFoo", e.CName())
	assert.Equal(t, "Foo doc.", e.Doc)
	require.Len(t, e.Members, 3)
	assert.Equal(t, NormalizedMember{EmittedName: "A", QualifiedName: "ZYDIS_FOO_A", Value: "0"}, e.Members[0])
	assert.Equal(t, "B", e.Members[1].EmittedName)
	assert.True(t, e.Members[2].Suppressed)

	assert.Len(t, e.Emitted(), 2)
	assert.Empty(t, e.Constants())
}

func TestNormalizeMaxValueConstant(t *testing.T) {
	raw := rawEnum("ZydisMachineMode_",
		"ZYDIS_MACHINE_MODE_LONG_64",
		"ZYDIS_MACHINE_MODE_REAL_16",
		"ZYDIS_MACHINE_MODE_MAX_VALUE",
	)
	raw.Members[2].Value = 1

	c := newTestConverter(t, TargetProfile{MaxValue: MaxValueConstant})
	e, err := c.Normalize(raw)
	require.NoError(t, err)

	consts := e.Constants()
	require.Len(t, consts, 1)
	assert.Equal(t, "MACHINE_MODE_MAX_VALUE", consts[0].EmittedName)
	assert.Equal(t, "1", consts[0].Value)
	assert.Len(t, e.Emitted(), 2)
}

func TestNormalizeNames(t *testing.T) {
	raw := rawEnum("ZydisOperandEncoding_",
		"ZYDIS_OPERAND_ENCODING_NONE",
		"ZYDIS_OPERAND_ENCODING_1",
		"ZYDIS_OPERAND_ENCODING_IF",
		"ZYDIS_OPERAND_ENCODING_SIMM16_32_64",
	)

	tests := []struct {
		name    string
		profile TargetProfile
		want    []string
	}{
		{
			"preserve",
			TargetProfile{Reserved: Set("IF")},
			[]string{"NONE", "_1", "_IF", "SIMM16_32_64"},
		},
		{
			"upper camel",
			TargetProfile{Reserved: Set("IF"), Casing: CasingUpperCamel},
			[]string{"None", "_1", "_If", "Simm163264"},
		},
		{
			"qualified",
			TargetProfile{QualifiedNames: true, Reserved: Set("IF")},
			[]string{"ZYDIS_OPERAND_ENCODING_NONE", "ZYDIS_OPERAND_ENCODING_1", "ZYDIS_OPERAND_ENCODING_IF", "ZYDIS_OPERAND_ENCODING_SIMM16_32_64"},
		},
		{
			"recombined",
			TargetProfile{SuppressLeadingNone: true, RecombineEscaped: true},
			[]string{"OperandEncoding_1", "IF", "SIMM16_32_64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := newTestConverter(t, tt.profile).Normalize(raw)
			require.NoError(t, err)

			var got []string
			for _, m := range e.Emitted() {
				got = append(got, m.EmittedName)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmptyMemberName(t *testing.T) {
	raw := rawEnum("ZydisBad_", "ZYDIS_BAD_X", "ZYDIS_BAD_X_Y")

	_, err := newTestConverter(t, TargetProfile{}).Normalize(raw)
	require.ErrorIs(t, err, ErrEmptyMemberName)
	assert.Contains(t, err.Error(), "ZydisBad_")
	assert.Contains(t, err.Error(), "ZYDIS_BAD_X")
}

func TestAcceptsAndExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipEnums = []string{"^Internal"}
	c, err := NewConverter(cfg, TargetProfile{Bitflags: Set("InstructionAttributes")})
	require.NoError(t, err)

	assert.True(t, c.Accepts(RawEnum{QualifiedName: "ZydisMachineMode_"}))
	assert.False(t, c.Accepts(RawEnum{QualifiedName: "ZyanBool_"}))
	assert.False(t, c.Accepts(RawEnum{QualifiedName: "Zydis_"}))

	assert.True(t, c.Excluded("InstructionAttributes"))
	assert.True(t, c.Excluded("InternalState"))
	assert.False(t, c.Excluded("MachineMode"))
}

func TestNewConverterBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipEnums = []string{"("}
	_, err := NewConverter(cfg, TargetProfile{})
	require.Error(t, err)
}

func TestNormalizeSingleMember(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawEnum
		suppressed bool
		emitted    string
	}{
		{"required bits", rawEnum("ZydisOne_", "ZYDIS_ONE_REQUIRED_BITS"), true, ""},
		{"max value", rawEnum("ZydisOne_", "ZYDIS_ONE_MAX_VALUE"), true, ""},
		{"sentinel with irregular prefix", rawEnum("ZydisCPUFlagX_", "ZYDIS_CPUFLAG_X_REQUIRED_BITS"), true, ""},
		{"regular member", rawEnum("ZydisMachineMode_", "ZYDIS_MACHINE_MODE_LONG_64"), false, "LONG_64"},
		{"irregular member", rawEnum("ZydisOdd_", "ZYAN_SOMETHING"), false, "ZYAN_SOMETHING"},
	}

	c := newTestConverter(t, TargetProfile{MaxValue: MaxValueSuppress})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := c.Normalize(tt.raw)
			require.NoError(t, err)
			require.Len(t, e.Members, 1)
			assert.Equal(t, tt.suppressed, e.Members[0].Suppressed)
			assert.Equal(t, tt.emitted, e.Members[0].EmittedName)
		})
	}
}
