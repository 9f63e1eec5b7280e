package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegType_String(t *testing.T) {
	tests := []struct {
		name     string
		regType  RegType
		expected string
	}{
		// Known types
		{name: "REG_NONE", regType: REG_NONE, expected: "REG_NONE"},
		{name: "REG_SZ", regType: REG_SZ, expected: "REG_SZ"},
		{name: "REG_EXPAND_SZ", regType: REG_EXPAND_SZ, expected: "REG_EXPAND_SZ"},
		{name: "REG_BINARY", regType: REG_BINARY, expected: "REG_BINARY"},
		{name: "REG_DWORD", regType: REG_DWORD, expected: "REG_DWORD"},
		{name: "REG_DWORD_BE", regType: REG_DWORD_BE, expected: "REG_DWORD_BIG_ENDIAN"},
		{name: "REG_LINK", regType: REG_LINK, expected: "REG_LINK"},
		{name: "REG_MULTI_SZ", regType: REG_MULTI_SZ, expected: "REG_MULTI_SZ"},
		{name: "REG_RESOURCE_LIST", regType: REG_RESOURCE_LIST, expected: "REG_RESOURCE_LIST"},
		{name: "REG_QWORD", regType: REG_QWORD, expected: "REG_QWORD"},
		// Unknown types render as signed int32
		{name: "Type 12", regType: RegType(12), expected: "UNKNOWN_TYPE_12"},
		{name: "Invalid type -1 (0xFFFFFFFF)", regType: RegType(0xFFFFFFFF), expected: "UNKNOWN_TYPE_-1"},
		{name: "Very large unknown type", regType: RegType(2147483648), expected: "UNKNOWN_TYPE_-2147483648"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.regType.String()
			if result != tt.expected {
				t.Errorf("RegType(%d).String() = %q, expected %q (0x%08x as int32: %d)",
					uint32(tt.regType), result, tt.expected,
					uint32(tt.regType), int32(tt.regType))
			}
		})
	}
}

func TestParseRegType(t *testing.T) {
	tests := []struct {
		in   string
		want RegType
	}{
		{"sz", REG_SZ},
		{"SZ", REG_SZ},
		{"reg_dword", REG_DWORD},
		{"REG_QWORD", REG_QWORD},
		{"multi_sz", REG_MULTI_SZ},
		{" expand_sz ", REG_EXPAND_SZ},
		{"binary", REG_BINARY},
		{"none", REG_NONE},
		{"dword_big_endian", REG_DWORD_BE},
		{"dword_be", REG_DWORD_BE},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegType_Unknown(t *testing.T) {
	for _, in := range []string{"", "  ", "word", "REG_"} {
		_, err := ParseRegType(in)
		require.ErrorIs(t, err, ErrInvalid, "input %q", in)
	}
}

func TestParseRegType_RoundTripsString(t *testing.T) {
	for typ := REG_NONE; typ <= REG_QWORD; typ++ {
		got, err := ParseRegType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}
}
