package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		cp   uint32
		in   []byte
		want string
	}{
		{"cp437 umlaut", 437, []byte{'S', 'c', 'h', 0x81, 'l', 'e', 'r'}, "Schüler"},
		{"cp850 accent", 850, []byte{'c', 'a', 'f', 0x82}, "café"},
		{"cp866 cyrillic", 866, []byte{0x8f, 0xe0, 0xa8}, "При"},
		{"windows1252 euro", 1252, []byte{0x80}, "€"},
		{"utf8 passthrough", UTF8, []byte("Grüße"), "Grüße"},
		{"unknown passthrough", 12345, []byte("plain"), "plain"},
		{"ascii", 437, []byte("ERROR: x"), "ERROR: x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.cp, tt.in))
		})
	}
}

func TestDecoder_Known(t *testing.T) {
	_, ok := Decoder(850)
	assert.True(t, ok)
	_, ok = Decoder(UTF8)
	assert.True(t, ok)
	_, ok = Decoder(1)
	assert.False(t, ok)
}

func TestOEM_NonZero(t *testing.T) {
	assert.NotZero(t, OEM())
}
