// Package types defines the shared vocabulary of regkit: registry value
// types, value names (including the unnamed default value) and the typed
// errors returned when reg.exe reports a failure.
//
// Design goals:
//   - Absence is not an error. A missing key or value is reported as a
//     normal outcome by the executor; only real failures use *Error.
//   - Typed errors with stable categories (exec/spawn/locale/invalid).
//   - The default value is a dedicated sentinel, never a magic string.
//
// This package has no dependencies beyond the standard library.
package types
