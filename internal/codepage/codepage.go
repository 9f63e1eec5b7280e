// Package codepage decodes reg.exe console output into UTF-8.
//
// reg.exe writes redirected output in the console's OEM code page, so
// non-ASCII key names and localized messages arrive as e.g. CP437 or CP850
// bytes. Decoders come from golang.org/x/text/encoding/charmap.
package codepage

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// UTF8 is the code page number of UTF-8; output in it needs no decoding.
const UTF8 = 65001

var decoders = map[uint32]*charmap.Charmap{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	855:  charmap.CodePage855,
	858:  charmap.CodePage858,
	860:  charmap.CodePage860,
	862:  charmap.CodePage862,
	863:  charmap.CodePage863,
	865:  charmap.CodePage865,
	866:  charmap.CodePage866,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

// Decoder returns a decoder for code page cp. UTF-8 and unknown code pages
// get a passthrough decoder; the second result reports whether cp was
// recognized.
func Decoder(cp uint32) (*encoding.Decoder, bool) {
	if cp == UTF8 {
		return encoding.Nop.NewDecoder(), true
	}
	cm, ok := decoders[cp]
	if !ok {
		return encoding.Nop.NewDecoder(), false
	}
	return cm.NewDecoder(), true
}

// Decode converts b from code page cp to a UTF-8 string. Undecodable input
// is returned unchanged.
func Decode(cp uint32, b []byte) string {
	dec, _ := Decoder(cp)
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
