package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocLines(t *testing.T) {
	assert.Nil(t, DocLines(""))
	assert.Equal(t, []string{"first", "second"}, DocLines("  first\n\n second  \n"))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; c", EscapeXML("a <b> & c"))
}

func TestFitsInt32(t *testing.T) {
	small := Enum{Members: []NormalizedMember{{Value: "0"}, {Value: "-2147483648"}, {Value: "2147483647"}}}
	assert.True(t, FitsInt32(small))

	large := Enum{Members: []NormalizedMember{{Value: "0"}, {Value: "1099511627776"}}}
	assert.False(t, FitsInt32(large))

	suppressed := Enum{Members: []NormalizedMember{{Value: "1099511627776", Suppressed: true}}}
	assert.True(t, FitsInt32(suppressed))
}
