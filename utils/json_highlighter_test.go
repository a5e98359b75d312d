package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightJSON(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, HighlightJSON(&out, []byte(`{"repo_name": "widgets"}`), "dracula"))

	assert.Contains(t, out.String(), "repo_name")
	assert.Contains(t, out.String(), "\x1b[")
}
