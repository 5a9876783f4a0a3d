package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_EmptyInputsSelectFirstTemplate(t *testing.T) {
	out := Deterministic{}.Validate("", "")

	assert.False(t, out.Succeeded)
	assert.Equal(t, "Authentication failed: Device hash not registered in Naoris network.", out.Message)
}

func TestValidate_NeverSucceeds(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"0xabc", "device_1"},
		{"0x1234567890abcdef1234567890abcdef12345678", "device_20250101120000_0123456789abcdef"},
		{"é", ""},
	}
	for _, in := range inputs {
		assert.False(t, Deterministic{}.Validate(in[0], in[1]).Succeeded, "input %q", in)
	}
}

func TestValidate_IsPure(t *testing.T) {
	v := Deterministic{}
	first := v.Validate("0xdeadbeef", "device_20240101000000_aaaaaaaaaaaaaaaa")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.Validate("0xdeadbeef", "device_20240101000000_aaaaaaaaaaaaaaaa"))
	}
}

func TestIndex_SingleCharacters(t *testing.T) {
	// 'A'..'E' are 65..69, one of each residue mod 5.
	tests := []struct {
		in   string
		want int
	}{
		{"A", 0},
		{"B", 1},
		{"C", 2},
		{"D", 3},
		{"E", 4},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Index(tt.in, ""))
			assert.Equal(t, tt.want, Index("", tt.in))
		})
	}
}

func TestIndex_KnownValues(t *testing.T) {
	assert.Equal(t, 0, Index("0xabc", "device_1"))
	assert.Equal(t, 4, Index("0x1234567890abcdef1234567890abcdef12345678", "device_20250101120000_0123456789abcdef"))
	// U+00E9 sums as a single code point (233), not as two UTF-8 bytes.
	assert.Equal(t, 3, Index("é", ""))
}

func TestIndex_CongruentSumsShareMessage(t *testing.T) {
	// "A" (65) and "AAAAAA" (390) are both 0 mod 5 despite different lengths.
	v := Deterministic{}
	assert.Equal(t, v.Validate("A", ""), v.Validate("AAAAAA", ""))
	assert.Equal(t, v.Validate("B", ""), v.Validate("AB", "AAAA"))
}

func TestIndex_CaseSensitive(t *testing.T) {
	// 'a' is 97 (2 mod 5), 'A' is 65 (0 mod 5).
	assert.NotEqual(t, Index("a", ""), Index("A", ""))
}
