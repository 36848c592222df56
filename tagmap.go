// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"strconv"
	"strings"
)

// canonicalFields is the fixed, finite set of lower-case field names used
// for all public tag interchange. Keys outside this set are silently
// dropped on insert into a restricted TagMap.
//
// Grounded on pytag/constants.py's FIELD_NAMES (not retrieved verbatim, but
// referenced throughout pytag/formats.py and structures.py) plus the
// ID3v2.4/Vorbis Comment standard field lists, open for extension.
var canonicalFields = map[string]bool{
	"title":        true,
	"artist":       true,
	"album":        true,
	"albumartist":  true,
	"date":         true,
	"tracknumber":  true,
	"tracktotal":   true,
	"discnumber":   true,
	"disctotal":    true,
	"genre":        true,
	"comment":      true,
	"composer":     true,
	"performer":    true,
	"lyrics":       true,
	"copyright":    true,
	"encodedby":    true,
	"organization": true,
	"description":  true,
	"website":      true,
	"isrc":         true,
}

// IsCanonicalField reports whether name (after lower-casing) is a member of
// the canonical field set.
func IsCanonicalField(name string) bool {
	return canonicalFields[strings.ToLower(name)]
}

// TagMap is a case-insensitive mapping from canonical field name to value.
// Values are one of string, int (ID3v1 tracknumber), or []string (ID3v2.3
// multi-genre) — see DESIGN.md's Open Questions entry for why this package
// keeps a dynamically-typed value instead of normalizing everything to
// string on read.
//
// Grounded on pytag/structures.py's CaseInsensitiveDict/PytagDict: keys are
// lower-cased on every operation, and a restricted TagMap (restricted=true)
// drops inserts whose normalized key is not in canonicalFields, exactly as
// PytagDict.__setitem__ does.
type TagMap struct {
	store      map[string]any
	restricted bool
}

// NewTagMap returns an empty, unrestricted TagMap: any key is accepted.
// Used internally while parsing (e.g. a Vorbis Comment packet may carry
// non-canonical vendor-specific keys that a caller may still want to see).
func NewTagMap() *TagMap {
	return &TagMap{store: make(map[string]any)}
}

// NewCanonicalTagMap returns an empty TagMap restricted to canonicalFields.
// This is the type returned by every public Reader/Writer in this package.
func NewCanonicalTagMap() *TagMap {
	return &TagMap{store: make(map[string]any), restricted: true}
}

// Set inserts or overwrites the value for key, lower-casing the key first.
// On a restricted TagMap, a key outside canonicalFields is silently
// dropped.
func (m *TagMap) Set(key string, value any) {
	key = strings.ToLower(key)
	if m.restricted && !canonicalFields[key] {
		return
	}
	m.store[key] = value
}

// Get returns the value stored for key (lower-cased) and whether it was
// present.
func (m *TagMap) Get(key string) (any, bool) {
	v, ok := m.store[strings.ToLower(key)]
	return v, ok
}

// GetString returns the value for key coerced to a string: a plain string
// value is returned as-is, an int is formatted in base 10, and a []string
// is joined with "/". Returns "" if the key is absent.
func (m *TagMap) GetString(key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	return stringifyTagValue(v)
}

func stringifyTagValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case []string:
		return strings.Join(x, "/")
	default:
		return ""
	}
}

// Delete removes key (lower-cased) from the map.
func (m *TagMap) Delete(key string) {
	delete(m.store, strings.ToLower(key))
}

// Len returns the number of entries in the map.
func (m *TagMap) Len() int {
	return len(m.store)
}

// Keys returns the normalized (lower-case) keys present in the map.
// Iteration order is unspecified.
func (m *TagMap) Keys() []string {
	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	return keys
}

// Equal compares two TagMaps after normalizing both to their underlying
// stores. Values are compared with equalTagValue, which treats equal
// []string slices as equal regardless of identity.
func (m *TagMap) Equal(other *TagMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.store) != len(other.store) {
		return false
	}
	for k, v := range m.store {
		ov, ok := other.store[k]
		if !ok || !equalTagValue(v, ov) {
			return false
		}
	}
	return true
}

func equalTagValue(a, b any) bool {
	switch av := a.(type) {
	case []string:
		bv, ok := b.([]string)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
