package regtext

import "strings"

// NormalizePath trims surrounding whitespace and turns forward slashes into
// backslashes. Hive names and segments are not validated; reg.exe reports
// malformed paths itself.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if strings.Contains(path, ForwardSlash) {
		return strings.ReplaceAll(path, ForwardSlash, Backslash)
	}
	return path
}

// ExpandHive rewrites a leading short hive name (HKLM, HKCU...) to the long
// form, matching the key lines reg.exe prints. Comparison is case-insensitive.
func ExpandHive(path string) string {
	hive, rest, found := strings.Cut(path, Backslash)
	long, ok := hiveAliases[strings.ToUpper(hive)]
	if !ok {
		return path
	}
	if !found {
		return long
	}
	return long + Backslash + rest
}

// JoinPath appends a child key name to a key path.
func JoinPath(parent, child string) string {
	return strings.TrimRight(parent, Backslash) + Backslash + child
}
