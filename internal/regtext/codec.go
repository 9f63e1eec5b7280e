package regtext

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Value is native registry data. The set of implementations is closed:
// Bytes, Strings, Int, Int64 and String. A nil Value means "no data".
type Value interface {
	isValue()
}

type (
	// Bytes is raw data; it defaults to REG_BINARY.
	Bytes []byte
	// Strings is an ordered list; it defaults to REG_MULTI_SZ.
	Strings []string
	// Int is a 32-bit integer; it defaults to REG_DWORD.
	Int int32
	// Int64 is a 64-bit integer; it defaults to REG_QWORD.
	Int64 int64
	// String is plain text; it defaults to REG_SZ.
	String string
)

func (Bytes) isValue()   {}
func (Strings) isValue() {}
func (Int) isValue()     {}
func (Int64) isValue()   {}
func (String) isValue()  {}

// Wire is a value in the form reg.exe takes on its command line.
// HasData is false when no data was given; HasType is false when no type
// was given and none could be inferred.
type Wire struct {
	Data    string
	Type    types.RegType
	HasData bool
	HasType bool
}

// Encode turns v into reg.exe's textual form. When typ is nil the type is
// inferred from the shape of v. Encode never fails: combinations reg.exe
// would reject are passed through for reg.exe to report.
func Encode(v Value, typ *types.RegType) Wire {
	var w Wire
	if typ != nil {
		w.Type, w.HasType = *typ, true
	}

	switch v := v.(type) {
	case nil:
		return w

	case Bytes:
		w.inferType(types.REG_BINARY)
		if w.Type == types.REG_BINARY {
			w.Data = hex.EncodeToString(v)
		} else {
			w.Data = string(v)
		}

	case Strings:
		w.inferType(types.REG_MULTI_SZ)
		w.Data = strings.Join(v, MultiStringSeparator)

	case Int:
		w.inferType(types.REG_DWORD)
		w.Data = strconv.FormatInt(int64(v), 10)

	case Int64:
		w.inferType(types.REG_QWORD)
		w.Data = strconv.FormatInt(int64(v), 10)

	case String:
		w.Data = string(v)
		switch {
		case !w.HasType:
			w.inferType(types.REG_SZ)
		case w.Type == types.REG_BINARY:
			w.Data = hex.EncodeToString([]byte(v))
		case w.Type == types.REG_MULTI_SZ:
			w.Data = strings.ReplaceAll(w.Data, NUL, MultiStringSeparator)
		}
	}

	w.HasData = true
	return w
}

func (w *Wire) inferType(t types.RegType) {
	if !w.HasType {
		w.Type, w.HasType = t, true
	}
}

// Decode turns data printed by reg.exe into a native value according to
// its type. Text that does not parse for its type, or a REG_DWORD outside
// 32 bits, comes back as String.
//
// REG_MULTI_SZ elements that themselves contain the two characters `\0`
// cannot be told apart from separators and split into extra elements.
func Decode(data string, typ types.RegType) Value {
	switch typ {
	case types.REG_BINARY:
		b, err := hex.DecodeString(data)
		if err != nil {
			return String(data)
		}
		return Bytes(b)

	case types.REG_DWORD:
		n, ok := parseInteger(data)
		if !ok || n < math.MinInt32 || n > math.MaxUint32 {
			return String(data)
		}
		// DWORDs print unsigned; the upper half wraps to negative.
		return Int(int32(uint32(n)))

	case types.REG_QWORD:
		n, ok := parseInteger(data)
		if !ok {
			return String(data)
		}
		return Int64(n)

	case types.REG_MULTI_SZ:
		return Strings(strings.Split(data, MultiStringSeparator))

	default:
		return String(data)
	}
}

// parseInteger accepts decimal ("42", "-7") and the 0x form reg.exe prints
// for DWORD/QWORD data. Unsigned values above MaxInt64 wrap to their two's
// complement so 0xffffffffffffffff reads as -1.
func parseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, s = 16, s[2:]
	}

	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, false
	}
	n := int64(u)
	if neg {
		n = -n
	}
	return n, true
}
