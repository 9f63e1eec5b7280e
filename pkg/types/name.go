package types

// ValueName identifies a value under a key. The zero value is not
// meaningful; use DefaultValue or Named.
//
// The unnamed ("default") value of a key is represented by DefaultValue,
// which compares unequal to every Named value, including Named("").
type ValueName struct {
	name      string
	isDefault bool
}

// DefaultValue is the unnamed value of a key.
var DefaultValue = ValueName{isDefault: true}

// Named returns the ValueName for an explicit value name.
func Named(name string) ValueName {
	return ValueName{name: name}
}

// IsDefault reports whether n is the unnamed value.
func (n ValueName) IsDefault() bool { return n.isDefault }

// Name returns the explicit name, or "" for the default value.
func (n ValueName) Name() string { return n.name }

// String returns "(default)" for the unnamed value and the name otherwise.
func (n ValueName) String() string {
	if n.isDefault {
		return "(default)"
	}
	return n.name
}

// NamePtr is a convenience for optional-name fields.
func NamePtr(n ValueName) *ValueName { return &n }
