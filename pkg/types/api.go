package types

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindExec     ErrKind = iota // reg.exe ran and reported a failure other than "not found"
	ErrKindSpawn                   // reg.exe could not be started at all
	ErrKindLocale                  // localized messages could not be learned
	ErrKindInvalid                 // malformed input rejected before reaching reg.exe
)

// String returns a short lowercase label for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindExec:
		return "exec"
	case ErrKindSpawn:
		return "spawn"
	case ErrKindLocale:
		return "locale"
	case ErrKindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
// Command holds the full reg command line for failures reported by reg.exe.
type Error struct {
	Kind    ErrKind
	Msg     string
	Command string
	Err     error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Command != "" {
		msg += " - Command '" + e.Command + "'"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so the
// sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels usable with errors.Is.
var (
	// ErrExec indicates reg.exe reported an error (bad path, access denied...).
	ErrExec = &Error{Kind: ErrKindExec, Msg: "reg.exe reported an error"}
	// ErrSpawn indicates reg.exe could not be started.
	ErrSpawn = &Error{Kind: ErrKindSpawn, Msg: "cannot start reg.exe"}
	// ErrLocale indicates reg.exe did not print the "not found" message the
	// locale discovery relies on.
	ErrLocale = &Error{Kind: ErrKindLocale, Msg: "cannot learn reg.exe locale"}
	// ErrInvalid indicates input rejected before any command was run.
	ErrInvalid = &Error{Kind: ErrKindInvalid, Msg: "invalid argument"}
)

// -----------------------------------------------------------------------------
// Registry value types
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
)

// regTypeNames holds the spelling reg.exe uses on its command line and in
// query output.
var regTypeNames = map[RegType]string{
	REG_NONE:                       "REG_NONE",
	REG_SZ:                         "REG_SZ",
	REG_EXPAND_SZ:                  "REG_EXPAND_SZ",
	REG_BINARY:                     "REG_BINARY",
	REG_DWORD:                      "REG_DWORD",
	REG_DWORD_BE:                   "REG_DWORD_BIG_ENDIAN",
	REG_LINK:                       "REG_LINK",
	REG_MULTI_SZ:                   "REG_MULTI_SZ",
	REG_RESOURCE_LIST:              "REG_RESOURCE_LIST",
	REG_FULL_RESOURCE_DESCRIPTOR:   "REG_FULL_RESOURCE_DESCRIPTOR",
	REG_RESOURCE_REQUIREMENTS_LIST: "REG_RESOURCE_REQUIREMENTS_LIST",
	REG_QWORD:                      "REG_QWORD",
}

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	if name, ok := regTypeNames[t]; ok {
		return name
	}
	// Format as signed int32 so garbage types stay readable
	return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
}

// RegTypePrefix is prepended to short type names by ParseRegType.
const RegTypePrefix = "REG_"

// ParseRegType accepts a type name in any case, with or without the REG_
// prefix ("sz", "reg_dword", "REG_QWORD"), and returns the matching type.
// REG_DWORD_BE is accepted as an alias of REG_DWORD_BIG_ENDIAN.
func ParseRegType(s string) (RegType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return 0, &Error{Kind: ErrKindInvalid, Msg: "empty registry type"}
	}
	if !strings.HasPrefix(name, RegTypePrefix) {
		name = RegTypePrefix + name
	}
	if name == "REG_DWORD_BE" {
		return REG_DWORD_BE, nil
	}
	for t, n := range regTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, &Error{Kind: ErrKindInvalid, Msg: fmt.Sprintf("unknown registry type %q", s)}
}
