// Package keypad maps the labels printed on calculator keys to key presses,
// and replays sequences of them against calculator sessions.
package keypad

import (
	"fmt"
	"sort"

	"github.com/karupanerura/keypad-calculator/internal/calculator"
	"github.com/karupanerura/keypad-calculator/internal/input"
	"github.com/samber/lo"
)

const EqualsLabel = "="

// Key is one key of the keypad. Literal tokens are mutable so every press
// builds a fresh token.
type Key struct {
	Label    string
	newToken func() input.Token
}

func (k Key) IsEquals() bool {
	return k.newToken == nil
}

func (k Key) Token() input.Token {
	if k.IsEquals() {
		return nil
	}
	return k.newToken()
}

// Press applies the key to s.
func (k Key) Press(s *calculator.Session) KeyResult {
	if k.IsEquals() {
		ret, err := s.Equals()
		if err != nil {
			return KeyResult{Key: k.Label, Result: EvaluationFailed, Display: s.Display(), Error: exceptionOf(err)}
		}
		return KeyResult{Key: k.Label, Result: Evaluated, Display: s.Display(), Value: ret.String()}
	}
	return KeyResult{Key: k.Label, Result: s.Press(k.Token()).String(), Display: s.Display()}
}

type Keymap struct {
	keys map[string]Key
}

var defaultKeymap = buildDefaultKeymap()

func DefaultKeymap() *Keymap {
	return defaultKeymap
}

func buildDefaultKeymap() *Keymap {
	keys := map[string]Key{
		EqualsLabel: {Label: EqualsLabel},
	}

	literals := append(lo.Times(10, func(i int) string { return fmt.Sprint(i) }), "00")
	for _, label := range literals {
		label := label
		keys[label] = Key{Label: label, newToken: func() input.Token { return input.NewLiteral(label) }}
	}

	for _, kind := range input.OperatorKinds() {
		op := input.NewOperator(kind)
		for _, label := range lo.Uniq([]string{op.Element(), op.DisplayElement()}) {
			keys[label] = operatorKey(label, op)
		}
	}

	// labels found on real keypads
	extra := map[string]input.OperatorKind{
		"−":   input.Subtraction,
		"x":   input.Multiplication,
		"C":   input.Clear,
		"CE":  input.Clear,
		"BS":  input.Backspace,
		"ANS": input.Ans,
		"√x":  input.Sqrt,
	}
	for label, kind := range extra {
		keys[label] = operatorKey(label, input.NewOperator(kind))
	}

	return &Keymap{keys: keys}
}

func operatorKey(label string, op input.Operator) Key {
	return Key{Label: label, newToken: func() input.Token { return op }}
}

func (m *Keymap) Lookup(label string) (Key, bool) {
	k, ok := m.keys[label]
	return k, ok
}

func (m *Keymap) Labels() []string {
	labels := lo.Keys(m.keys)
	sort.Strings(labels)
	return labels
}

// WithAliases returns a keymap in which each alias presses the key its
// target label names. m is not modified.
func (m *Keymap) WithAliases(aliases map[string]string) (*Keymap, error) {
	if len(aliases) == 0 {
		return m, nil
	}

	added := make(map[string]Key, len(aliases))
	for alias, target := range aliases {
		k, ok := m.keys[target]
		if !ok {
			return nil, fmt.Errorf("alias %q: unknown key %q", alias, target)
		}
		k.Label = alias
		added[alias] = k
	}
	return &Keymap{keys: lo.Assign(m.keys, added)}, nil
}
