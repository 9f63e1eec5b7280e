package regtext

import (
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Markers are the localized tokens reg.exe prints in place of the name and
// the data of an unnamed value that has never been set, e.g. "(Default)"
// and "(value not set)" on an English system.
type Markers struct {
	DefaultName string
	Unset       string
}

// QueryValue is one value line of reg.exe query output.
type QueryValue struct {
	Name types.ValueName
	Type types.RegType
	Data Value // nil when the value is not set
}

// QueryResult is the parsed output of `reg query <key>`.
type QueryResult struct {
	Path    string
	Values  []QueryValue
	Subkeys []string // immediate child names, not full paths
}

// ErrorLine returns the first line of reg.exe error output.
func ErrorLine(stderr string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(stderr), LF)
	return strings.TrimRight(line, CR)
}

// StripErrorPrefix drops the localized "ERROR: " label in front of a
// reg.exe error line. Lines without a recognizable label are returned as is.
func StripErrorPrefix(line string) string {
	i := strings.Index(line, ErrorPrefixSeparator)
	if i < 0 || i > ErrorPrefixMaxLen {
		return line
	}
	return line[i+len(ErrorPrefixSeparator):]
}

// ParseMarkers extracts the default-name and unset markers from the output
// of `reg query <key> /ve`: the first two parenthesized tokens after the
// key line. ok is false if either token is missing.
func ParseMarkers(stdout string) (m Markers, ok bool) {
	_, rest, _ := strings.Cut(strings.TrimLeft(stdout, CRLF), LF)
	name, rest, ok := parenToken(rest)
	if !ok {
		return Markers{}, false
	}
	unset, _, ok := parenToken(rest)
	if !ok {
		return Markers{}, false
	}
	return Markers{DefaultName: name, Unset: unset}, true
}

// parenToken returns the first "(...)" token in s, parentheses included,
// and the text after it.
func parenToken(s string) (token, rest string, ok bool) {
	open := strings.Index(s, "(")
	if open < 0 {
		return "", s, false
	}
	end := strings.Index(s[open:], ")")
	if end < 0 {
		return "", s, false
	}
	end += open + 1
	return s[open:end], s[end:], true
}

// ParseQuery parses the output of a non-recursive `reg query <key>`.
// Value lines become Values; key lines directly under key become Subkeys.
// reg.exe omits the key's own line when it has no values, so the subkey
// prefix comes from key rather than from the output.
func ParseQuery(stdout, key string, m Markers) QueryResult {
	res := QueryResult{Path: strings.TrimRight(ExpandHive(NormalizePath(key)), Backslash)}
	prefix := res.Path + Backslash

	for _, line := range strings.Split(stdout, LF) {
		line = strings.TrimRight(line, CR)
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, ValueColumnSeparator) {
			if len(res.Subkeys) > 0 {
				continue
			}
			if v, ok := parseValueLine(line, m); ok {
				res.Values = append(res.Values, v)
			}
			continue
		}

		if strings.EqualFold(line, res.Path) {
			res.Path = line
			continue
		}
		if len(line) > len(prefix) && strings.EqualFold(line[:len(prefix)], prefix) {
			res.Subkeys = append(res.Subkeys, line[len(prefix):])
		}
	}
	return res
}

func parseValueLine(line string, m Markers) (QueryValue, bool) {
	cols := strings.SplitN(strings.TrimPrefix(line, ValueColumnSeparator), ValueColumnSeparator, 3)
	if len(cols) < 2 {
		return QueryValue{}, false
	}

	typ, err := types.ParseRegType(cols[1])
	if err != nil {
		return QueryValue{}, false
	}

	v := QueryValue{Name: types.Named(cols[0]), Type: typ}
	isDefault := m.DefaultName != "" && cols[0] == m.DefaultName
	if isDefault {
		v.Name = types.DefaultValue
	}

	data := ""
	if len(cols) == 3 {
		data = cols[2]
	}
	if isDefault && m.Unset != "" && data == m.Unset {
		return v, true
	}
	v.Data = Decode(data, typ)
	return v, true
}
