package pianola

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	// KeyBinding binds a computer keyboard key to a pitch. In a list of
	// overrides, a zero Pitch unbinds the key.
	KeyBinding struct {
		Key   string
		Pitch Pitch
	}

	// Bindings maps normalized (lower case) key names to pitches. A valid
	// Bindings is a one-to-one mapping, so that every key on the screen can
	// show the single computer key that plays it.
	Bindings map[string]Pitch
)

//go:embed keybindings.yml
var defaultKeyBindings []byte

// DefaultBindings returns the bindings of the home row layout: white keys on
// A S D F G H J K, black keys on W E T Y U.
func DefaultBindings() Bindings {
	list, err := ParseBindings(defaultKeyBindings)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	return Bindings{}.Apply(list)
}

// ParseBindings decodes a yaml list of key bindings. Unknown fields are an
// error, so that typos in the configuration do not go unnoticed.
func ParseBindings(data []byte) ([]KeyBinding, error) {
	var list []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("could not decode keybindings: %w", err)
	}
	return list, nil
}

// NormalizeKey maps a key name to the form used in Bindings.
func NormalizeKey(key string) string {
	return cases.Lower(language.Und).String(key)
}

// Apply returns a copy of the bindings with the list applied on top of it.
func (b Bindings) Apply(list []KeyBinding) Bindings {
	ret := make(Bindings, len(b)+len(list))
	for k, v := range b {
		ret[k] = v
	}
	for _, kb := range list {
		key := NormalizeKey(kb.Key)
		if kb.Pitch == 0 {
			delete(ret, key)
			continue
		}
		ret[key] = kb.Pitch
	}
	return ret
}

// Validate checks that every key is non-empty, every pitch is on the piano and
// no pitch is bound to more than one key.
func (b Bindings) Validate() error {
	var errs []error
	seen := make(map[Pitch]string, len(b))
	for _, key := range b.keys() {
		p := b[key]
		if key == "" {
			errs = append(errs, fmt.Errorf("empty key bound to %v", p))
		}
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("key %q bound to pitch %d outside [%d, %d]", key, int(p), int(MinPitch), int(MaxPitch)))
			continue
		}
		if other, ok := seen[p]; ok {
			errs = append(errs, fmt.Errorf("pitch %v bound to both %q and %q", p, other, key))
			continue
		}
		seen[p] = key
	}
	return errors.Join(errs...)
}

// Pitch returns the pitch bound to the key. The lookup ignores case.
func (b Bindings) Pitch(key string) (Pitch, bool) {
	p, ok := b[NormalizeKey(key)]
	return p, ok
}

// Hint returns the upper case name of the key bound to the pitch, or an empty
// string if the pitch has no key.
func (b Bindings) Hint(p Pitch) string {
	for _, key := range b.keys() {
		if b[key] == p {
			return cases.Upper(language.Und).String(key)
		}
	}
	return ""
}

func (b Bindings) keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
