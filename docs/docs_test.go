package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc["basePath"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, p := range []string{"/universities", "/favorites", "/login", "/users/me"} {
		assert.Contains(t, paths, p)
	}
}
