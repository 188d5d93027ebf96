package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// PackageManifest is the part of a package.json the resolver cares about.
type PackageManifest struct {
	Name    string       `json:"name"`
	Main    string       `json:"main"`
	Browser BrowserField `json:"browser"`
}

// BrowserField is the package.json "browser" field, which is either a
// replacement entry point or an object of per-file replacements.
type BrowserField struct {
	Entry        string
	Replacements map[string]string
	Disabled     []string // keys mapped to false, sorted
}

// IsZero reports whether the field was absent.
func (b BrowserField) IsZero() bool {
	return b.Entry == "" && len(b.Replacements) == 0 && len(b.Disabled) == 0
}

// UnmarshalJSON accepts both the string and the object form.
func (b *BrowserField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &b.Entry)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("browser field: %w", err)
		}

		for key, value := range raw {
			value = bytes.TrimSpace(value)
			switch {
			case bytes.Equal(value, []byte("false")):
				b.Disabled = append(b.Disabled, key)
			case len(value) > 0 && value[0] == '"':
				var target string
				if err := json.Unmarshal(value, &target); err != nil {
					return fmt.Errorf("browser field %q: %w", key, err)
				}

				if b.Replacements == nil {
					b.Replacements = make(map[string]string)
				}

				b.Replacements[key] = target
			}
		}

		sort.Strings(b.Disabled)

		return nil
	}

	// Anything else (numbers, booleans, arrays) is unsupported and ignored.
	return nil
}
