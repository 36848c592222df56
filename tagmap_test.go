// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagMapCaseInsensitive(t *testing.T) {
	m := NewTagMap()
	m.Set("Title", "Test")
	v, ok := m.Get("TITLE")
	require.True(t, ok)
	require.Equal(t, "Test", v)
}

func TestCanonicalTagMapDropsUnknownKeys(t *testing.T) {
	m := NewCanonicalTagMap()
	m.Set("title", "Test")
	m.Set("x-proprietary-key", "ignored")

	require.Equal(t, 1, m.Len())
	_, ok := m.Get("x-proprietary-key")
	require.False(t, ok)
}

func TestTagMapGetString(t *testing.T) {
	m := NewTagMap()
	m.Set("tracknumber", 3)
	m.Set("title", "Test")
	m.Set("performers", []string{"a", "b"})

	require.Equal(t, "3", m.GetString("tracknumber"))
	require.Equal(t, "Test", m.GetString("title"))
	require.Equal(t, "a/b", m.GetString("performers"))
	require.Equal(t, "", m.GetString("missing"))
}

func TestTagMapDelete(t *testing.T) {
	m := NewTagMap()
	m.Set("title", "Test")
	m.Delete("TITLE")
	_, ok := m.Get("title")
	require.False(t, ok)
}

func TestTagMapEqual(t *testing.T) {
	a := NewTagMap()
	a.Set("title", "Test")
	a.Set("performers", []string{"x", "y"})

	b := NewTagMap()
	b.Set("title", "Test")
	b.Set("performers", []string{"x", "y"})

	require.True(t, a.Equal(b))

	b.Set("title", "Other")
	require.False(t, a.Equal(b))
}

func TestIsCanonicalField(t *testing.T) {
	require.True(t, IsCanonicalField("Title"))
	require.False(t, IsCanonicalField("x-custom"))
}
