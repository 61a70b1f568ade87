package openapi

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Regenerate with: go test ./internal/api/openapi -update
func TestDocument_Golden(t *testing.T) {
	b, err := JSON(Document("test"))
	require.NoError(t, err)

	var generic any
	require.NoError(t, json.Unmarshal(b, &generic))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.AssertJson(t, "swagger", generic)
}

func TestDocument_EveryRouteIsAGet(t *testing.T) {
	doc := Document("dev")
	want := []string{
		"/med/",
		"/med/by-uuid/{uuid}/",
		"/med/by-name/{name}/",
		"/entry/",
		"/entry/by-entry-uuid/{uuid}/",
		"/entry/by-med-uuid/{uuid}/",
		"/entry/by-med-name/{name}/",
	}
	require.Len(t, doc.Paths.Paths, len(want))
	for _, p := range want {
		item, ok := doc.Paths.Paths[p]
		require.True(t, ok, "missing path %s", p)
		require.NotNil(t, item.Get, "path %s has no GET", p)
		_, ok = item.Get.Responses.StatusCodeResponses[200]
		assert.True(t, ok, "path %s has no 200 response", p)
	}
}

func TestYAML_MatchesJSON(t *testing.T) {
	doc := Document("1.2.3")
	jb, err := JSON(doc)
	require.NoError(t, err)
	yb, err := YAML(doc)
	require.NoError(t, err)

	var fromJSON, fromYAML map[string]any
	require.NoError(t, json.Unmarshal(jb, &fromJSON))
	require.NoError(t, yaml.Unmarshal(yb, &fromYAML))

	assert.Equal(t, "2.0", fromYAML["swagger"])
	info := fromYAML["info"].(map[string]any)
	assert.Equal(t, "1.2.3", info["version"])
	assert.Len(t, fromYAML["paths"], len(fromJSON["paths"].(map[string]any)))
}
