package validators

import (
	"fmt"
	"strings"
)

const keySeparator = "."

// Key identifies a value in the record data by its field path, for example
// "title" or "resources.0.url".
type Key string

// NewKey joins path components into a Key. Components are formatted with
// fmt.Sprint so list indexes may be passed as ints.
func NewKey(parts ...any) Key {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, fmt.Sprint(part))
	}
	return Key(strings.Join(out, keySeparator))
}

// Parts splits the key into its path components.
func (k Key) Parts() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), keySeparator)
}

// Name returns the last path component, the field name.
func (k Key) Name() string {
	s := string(k)
	if idx := strings.LastIndex(s, keySeparator); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Parent returns the key without its last component.
func (k Key) Parent() Key {
	s := string(k)
	if idx := strings.LastIndex(s, keySeparator); idx >= 0 {
		return Key(s[:idx])
	}
	return ""
}

// Child appends a component to the key.
func (k Key) Child(name string) Key {
	if k == "" {
		return Key(name)
	}
	return k + Key(keySeparator+name)
}

// Sibling replaces the field name while keeping every other component.
func (k Key) Sibling(name string) Key {
	return k.Parent().Child(name)
}

func (k Key) String() string {
	return string(k)
}
