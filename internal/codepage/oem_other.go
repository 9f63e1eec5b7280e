//go:build !windows

package codepage

// OEM returns UTF8 on non-Windows hosts, where reg.exe substitutes
// (tests, remote wrappers) emit UTF-8.
func OEM() uint32 {
	return UTF8
}
