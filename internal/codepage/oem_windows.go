//go:build windows

package codepage

import "golang.org/x/sys/windows"

var (
	kernel32     = windows.NewLazySystemDLL("kernel32.dll")
	procOEMCP    = kernel32.NewProc("GetOEMCP")
	procConOutCP = kernel32.NewProc("GetConsoleOutputCP")
)

// OEM returns the code page reg.exe uses for redirected output: the
// console output code page when a console is attached, else the OEM code
// page.
func OEM() uint32 {
	if cp, _, _ := procConOutCP.Call(); cp != 0 {
		return uint32(cp)
	}
	cp, _, _ := procOEMCP.Call()
	return uint32(cp)
}
