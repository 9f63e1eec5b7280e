package regtext

const (
	// ============================================================================
	// reg.exe Program and Verbs
	// ============================================================================

	// Program is the registry console tool every command is sent to.
	Program = "reg.exe"

	// CommandName is how commands are echoed back in error messages.
	CommandName = "reg"

	// VerbQuery lists a key's values and immediate subkeys.
	VerbQuery = "QUERY"

	// VerbDelete removes keys or values.
	VerbDelete = "delete"

	// ============================================================================
	// reg.exe Flags
	// ============================================================================

	// FlagForce suppresses the interactive confirmation prompt.
	FlagForce = "/f"

	// FlagValue selects a named value; the name follows as its own argument.
	FlagValue = "/v"

	// FlagDefaultValue selects the unnamed (default) value of a key.
	FlagDefaultValue = "/ve"

	// FlagAllValues selects every value of a key (delete only).
	FlagAllValues = "/va"

	// FlagView64 targets the 64-bit registry view.
	FlagView64 = "/reg:64"

	// FlagView32 targets the 32-bit registry view.
	FlagView32 = "/reg:32"

	// ============================================================================
	// Locale discovery
	// ============================================================================

	// LocaleMissingKey is a path guaranteed not to exist. Querying it makes
	// reg.exe print its localized "not found" error.
	LocaleMissingKey = `HKLM\NONEXISTENT`

	// LocaleDefaultKey is a key guaranteed to exist. Querying its unnamed value
	// makes reg.exe print the localized default-name and unset markers.
	LocaleDefaultKey = "HKCR"

	// ============================================================================
	// Delimiters
	// ============================================================================

	// Backslash is the only path separator reg.exe accepts
	Backslash = "\\"

	// ForwardSlash is an alternative path separator (normalized to backslash)
	ForwardSlash = "/"

	// MultiStringSeparator joins REG_MULTI_SZ elements on the command line.
	// It is the two characters backslash and zero, not a NUL byte.
	MultiStringSeparator = `\0`

	// NUL is the character escaped as MultiStringSeparator inside strings.
	NUL = "\x00"

	// ValueColumnSeparator splits the name, type and data columns of a value
	// line in query output.
	ValueColumnSeparator = "    "

	// ErrorPrefixSeparator ends the localized "ERROR" label on stderr.
	ErrorPrefixSeparator = ": "

	// ErrorPrefixMaxLen bounds where ErrorPrefixSeparator may appear for the
	// text before it to count as the label.
	ErrorPrefixMaxLen = 16

	// ============================================================================
	// Line Endings
	// ============================================================================

	// CRLF is the Windows line ending (carriage return + line feed)
	CRLF = "\r\n"

	// CR is the carriage return character
	CR = "\r"

	// LF is the line feed character
	LF = "\n"

	// ============================================================================
	// Registry Key Path Prefixes (HKEY roots)
	// ============================================================================

	HKEYLocalMachine      = "HKEY_LOCAL_MACHINE"
	HKEYLocalMachineShort = "HKLM"

	HKEYClassesRoot      = "HKEY_CLASSES_ROOT"
	HKEYClassesRootShort = "HKCR"

	HKEYCurrentUser      = "HKEY_CURRENT_USER"
	HKEYCurrentUserShort = "HKCU"

	HKEYUsers      = "HKEY_USERS"
	HKEYUsersShort = "HKU"

	HKEYCurrentConfig      = "HKEY_CURRENT_CONFIG"
	HKEYCurrentConfigShort = "HKCC"
)

// hiveAliases maps the short hive names to the long form reg.exe prints in
// query output.
var hiveAliases = map[string]string{
	HKEYLocalMachineShort:  HKEYLocalMachine,
	HKEYClassesRootShort:   HKEYClassesRoot,
	HKEYCurrentUserShort:   HKEYCurrentUser,
	HKEYUsersShort:         HKEYUsers,
	HKEYCurrentConfigShort: HKEYCurrentConfig,
}
