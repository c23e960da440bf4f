package swagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	doc := mustParse(t, petstore)
	paths := doc.Paths()
	require.Len(t, paths, 1)

	item := paths[0]
	assert.Equal(t, "/pets/{petId}", item.Template)
	assert.Len(t, item.Parameters, 1)
	require.Len(t, item.Operations, 2)
	assert.Equal(t, "get", item.Operations[0].Method)
	assert.Equal(t, "post", item.Operations[1].Method)

	get := item.Operations[0]
	require.Len(t, get.Responses, 2)
	assert.True(t, get.Responses[0].Success())
	assert.NotNil(t, get.Responses[0].Schema)
	assert.False(t, get.Responses[1].Success())

	post := item.Operations[1]
	require.Len(t, post.Parameters, 1)
	assert.NotNil(t, ParamSchema(post.Parameters[0]))
	assert.Equal(t, "body", Field(post.Parameters[0], "in"))
}

func TestResource(t *testing.T) {
	assert.Equal(t, "pets", Resource("/pets"))
	assert.Equal(t, "pets", Resource("/pets/{petId}"))
	assert.Equal(t, "uploadImage", Resource("/pet/{petId}/uploadImage"))
	assert.Equal(t, "", Resource("/{id}"))
}

func TestPreceding(t *testing.T) {
	tests := []struct {
		template, param string
		segment, prefix string
		ok              bool
	}{
		{"/pets/{petId}", "petId", "pets", "/pets", true},
		{"/stores/{storeId}/pets/{petId}", "petId", "pets", "/stores/{storeId}/pets", true},
		{"/stores/{storeId}/pets/{petId}", "storeId", "stores", "/stores", true},
		{"/{id}", "id", "", "", false},
		{"/pets", "petId", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.template+"#"+tt.param, func(t *testing.T) {
			segment, prefix, ok := Preceding(tt.template, tt.param)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.segment, segment)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}
