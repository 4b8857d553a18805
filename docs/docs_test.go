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

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	for _, p := range []string{"/medications", "/doses/{doseID}/taken", "/adherence/stats", "/adherence/daily"} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/medications/{medicationID}"], "patch")
}
