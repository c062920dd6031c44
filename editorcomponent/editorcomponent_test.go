package editorcomponent_test

import (
	"fmt"
	"testing"

	"github.com/reglet-dev/reglet-cms/editorcomponent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := editorcomponent.New(editorcomponent.Config{ID: " youtube "})
	require.NoError(t, err)

	assert.Equal(t, "youtube", c.ID())
	assert.Equal(t, editorcomponent.DefaultLabel, c.Label())
	assert.Equal(t, editorcomponent.DefaultIcon, c.Icon())
	assert.Equal(t, editorcomponent.DefaultType, c.Type())
	assert.Equal(t, editorcomponent.DefaultWidget, c.Widget())
	assert.Equal(t, "Plugin", c.Block(nil))
	assert.Equal(t, "Plugin", c.Preview(nil))

	_, ok := c.Match("anything at all")
	assert.False(t, ok, "default pattern must never match")
}

func TestNew_Validation(t *testing.T) {
	_, err := editorcomponent.New(editorcomponent.Config{})
	assert.Error(t, err)

	_, err = editorcomponent.New(editorcomponent.Config{ID: "bad", Pattern: "("})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestComponent_RoundTrip(t *testing.T) {
	c, err := editorcomponent.New(editorcomponent.Config{
		ID:      "youtube",
		Label:   "YouTube",
		Pattern: `^\{\{<\s?youtube (\S+)\s?>\}\}`,
		FromBlock: func(m []string) map[string]any {
			return map[string]any{"id": m[1]}
		},
		ToBlock: func(data map[string]any) string {
			return fmt.Sprintf("{{< youtube %v >}}", data["id"])
		},
		Extra: map[string]any{"allow_add": true},
	})
	require.NoError(t, err)

	data, ok := c.Match("{{< youtube dQw4w9WgXcQ >}}")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "dQw4w9WgXcQ"}, data)
	assert.Equal(t, "{{< youtube dQw4w9WgXcQ >}}", c.Block(data))
	assert.Equal(t, c.Block(data), c.Preview(data), "preview falls back to block serialization")

	v, ok := c.Extra("allow_add")
	assert.True(t, ok)
	assert.Equal(t, true, v)
}

func TestComponent_CustomPreview(t *testing.T) {
	c, err := editorcomponent.New(editorcomponent.Config{
		ID:        "note",
		ToPreview: func(data map[string]any) string { return "<aside>" + data["text"].(string) + "</aside>" },
	})
	require.NoError(t, err)
	assert.Equal(t, "<aside>hi</aside>", c.Preview(map[string]any{"text": "hi"}))
	assert.Equal(t, "Plugin", c.Block(nil))
}
