// Package apps defines the closed set of hosted application kinds and the
// read-only asset table (title, icon, sizing class) keyed by kind.
package apps

import (
	"fmt"
	"strings"
)

// Kind identifies a hosted application. The set is closed: the only valid
// values are the constants below, and every switch over Kind must handle
// all of them.
type Kind uint8

const (
	Explorer Kind = iota + 1
	Editor
	Paint
	Calculator
	Browser
)

// all lists every kind in display order.
var all = [...]Kind{Explorer, Editor, Paint, Calculator, Browser}

// All returns every app kind in display order.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all[:])
	return out
}

// String returns the stable identifier used in config files and window ids.
func (k Kind) String() string {
	switch k {
	case Explorer:
		return "explorer"
	case Editor:
		return "editor"
	case Paint:
		return "paint"
	case Calculator:
		return "calculator"
	case Browser:
		return "browser"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Explorer && k <= Browser
}

// MustValid panics when k is outside the closed set. Reaching this is a
// programming error, not a runtime condition.
func (k Kind) MustValid() Kind {
	if !k.Valid() {
		panic(fmt.Sprintf("apps: unknown kind %d", uint8(k)))
	}
	return k
}

// Parse resolves a kind identifier such as "calculator".
func Parse(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range all {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown app %q (valid: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the identifiers of every kind.
func Names() []string {
	names := make([]string, 0, len(all))
	for _, k := range all {
		names = append(names, k.String())
	}
	return names
}

// MarshalText implements encoding.TextMarshaler so kinds round-trip through yaml.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown app kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
