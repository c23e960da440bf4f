package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtag/index"
	"github.com/c360studio/semtag/nlp"
	"github.com/c360studio/semtag/phrase"
	"github.com/c360studio/semtag/swagger"
	"github.com/c360studio/semtag/tag"
	"github.com/c360studio/semtag/vocabulary"
)

const store = `swagger: "2.0"
paths:
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          type: integer
          description: ID of pet
      responses:
        "200":
          description: found
          schema:
            $ref: "#/definitions/Pet"
  /pets:
    get:
      parameters:
        - name: status
          in: query
          type: string
      responses:
        "200":
          description: listed
          schema:
            type: object
            properties:
              id:
                type: integer
              name:
                type: string
    post:
      description: Add a new pet to the store
      parameters:
        - name: body
          in: body
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "405":
          description: invalid input
    put:
      description: Update an existing pet
      responses:
        "200":
          description: updated
definitions:
  Pet:
    type: object
    properties:
      id:
        type: integer
      name:
        type: string
  Order:
    type: object
    properties:
      id:
        type: integer
      petId:
        type: integer
      quantity:
        type: integer
  Owner:
    type: object
    properties:
      owner:
        type: string
      name:
        type: string
`

type recorder struct {
	visited map[SiteKind]int
	tagged  []string
}

func (r *recorder) Visited(kind SiteKind) {
	if r.visited == nil {
		r.visited = make(map[SiteKind]int)
	}
	r.visited[kind]++
}

func (r *recorder) Tagged(_ SiteKind, t tag.Tag, _ float64) {
	r.tagged = append(r.tagged, t.String())
}

func setup(t *testing.T, src string, opts Options) (*swagger.Document, *Resolver) {
	t.Helper()
	doc, err := swagger.Parse([]byte(src), nil)
	require.NoError(t, err)
	m, err := nlp.NewEnglish()
	require.NoError(t, err)
	v, err := vocabulary.New(m)
	require.NoError(t, err)
	return doc, New(doc, v, index.Build(doc, v, nil), m, opts)
}

func pathItem(t *testing.T, doc *swagger.Document, template string) swagger.PathItem {
	t.Helper()
	for _, item := range doc.Paths() {
		if item.Template == template {
			return item
		}
	}
	t.Fatalf("path %s not found", template)
	return swagger.PathItem{}
}

func operation(t *testing.T, doc *swagger.Document, template, method string) swagger.Operation {
	t.Helper()
	for _, op := range pathItem(t, doc, template).Operations {
		if op.Method == method {
			return op
		}
	}
	t.Fatalf("operation %s %s not found", method, template)
	return swagger.Operation{}
}

func param(src string) *yaml.Node {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		panic(err)
	}
	return n.Content[0]
}

func TestResolveParameter(t *testing.T) {
	tests := []struct {
		name     string
		template string
		param    string
		want     string
		tagged   bool
	}{
		{
			name:     "path variable",
			template: "/pets/{petId}",
			param:    "{name: petId, in: path, type: integer, description: ID of pet}",
			want:     "ID of pet <meqa Pet.id>",
			tagged:   true,
		},
		{
			name:     "query by name",
			template: "/orders",
			param:    "{name: petId, in: query, type: integer}",
			want:     "<meqa Pet.id>",
			tagged:   true,
		},
		{
			name:     "numeric types are interchangeable",
			template: "/orders",
			param:    "{name: petId, in: query, type: number}",
			want:     "<meqa Pet.id>",
			tagged:   true,
		},
		{
			name:     "type mismatch",
			template: "/orders",
			param:    "{name: petId, in: query, type: string}",
			want:     "",
		},
		{
			name:     "no matching property",
			template: "/pets",
			param:    "{name: status, in: query, type: string}",
			want:     "",
		},
		{
			name:     "description fallback",
			template: "/orders",
			param:    "{name: q, in: query, type: string, description: The pet name to look for}",
			want:     "The pet name to look for <meqa Pet.name>",
			tagged:   true,
		},
		{
			name:     "enum untouched",
			template: "/orders",
			param:    "{name: petId, in: query, type: integer, enum: [1, 2]}",
			want:     "",
		},
		{
			name:     "already tagged",
			template: "/orders",
			param:    "{name: petId, in: query, type: integer, description: <meqa Order.id>}",
			want:     "<meqa Order.id>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := setup(t, store, DefaultOptions())
			p := param(tt.param)
			assert.Equal(t, tt.tagged, r.ResolveParameter(tt.template, "get", p))
			assert.Equal(t, tt.want, swagger.Description(p))
		})
	}
}

func TestResolveParameter_BodyObject(t *testing.T) {
	doc, r := setup(t, store, DefaultOptions())
	op := operation(t, doc, "/pets", "post")
	require.Len(t, op.Parameters, 1)

	assert.True(t, r.ResolveParameter("/pets", "post", op.Parameters[0]))
	assert.Equal(t, "<meqa Pet>", swagger.Description(op.Parameters[0]))
}

func TestResolveParameter_BodyLeavesUseResource(t *testing.T) {
	doc, r := setup(t, `swagger: "2.0"
paths:
  /pets:
    post:
      parameters:
        - name: body
          in: body
          schema:
            type: object
            properties:
              name:
                type: string
definitions:
  Pet:
    type: object
    properties:
      id:
        type: integer
      name:
        type: string
`, DefaultOptions())
	body := operation(t, doc, "/pets", "post").Parameters[0]

	assert.True(t, r.ResolveParameter("/pets", "post", body))
	leaf := swagger.Classify(swagger.ParamSchema(body)).Properties[0].Value
	assert.Equal(t, "<meqa Pet.name>", swagger.Description(leaf))
	assert.Empty(t, swagger.Description(body))
}

func TestFindBest(t *testing.T) {
	_, r := setup(t, store, DefaultOptions())

	t.Run("exclude", func(t *testing.T) {
		_, ok := r.FindBest(Query{Phrase: phrase.Parse("pet id"), Type: swagger.TypeInteger, Exclude: "Pet"})
		assert.False(t, ok)
	})

	t.Run("empty phrase", func(t *testing.T) {
		_, ok := r.FindBest(Query{})
		assert.False(t, ok)
	})

	t.Run("reused words cost extra", func(t *testing.T) {
		m, ok := r.FindBest(Query{Phrase: phrase.Parse("owner name")})
		require.True(t, ok)
		assert.Equal(t, Match{Definition: "Owner", Property: "name", Cost: 0}, m)

		m, ok = r.FindBest(Query{Phrase: phrase.Parse("owner")})
		require.True(t, ok)
		assert.Equal(t, "owner", m.Property)
		assert.Equal(t, 1.0, m.Cost)
	})

	t.Run("literal property", func(t *testing.T) {
		m, ok := r.FindBest(Query{
			Phrase:   phrase.Parse("order"),
			Property: phrase.Parse("pet id"),
			Literal:  "petId",
		})
		require.True(t, ok)
		assert.Equal(t, Match{Definition: "Order", Property: "petId"}, m)
	})
}

func TestResolveDefinition(t *testing.T) {
	doc, r := setup(t, store, DefaultOptions())
	order, ok := doc.Definition("Order")
	require.True(t, ok)

	assert.Equal(t, 1, r.ResolveDefinition("Order", order))
	props := swagger.Classify(order).Properties
	require.Len(t, props, 3)
	assert.Equal(t, "", swagger.Description(props[0].Value))
	assert.Equal(t, "<meqa Pet.id>", swagger.Description(props[1].Value))
	assert.Equal(t, "", swagger.Description(props[2].Value))

	pet, ok := doc.Definition("Pet")
	require.True(t, ok)
	assert.Zero(t, r.ResolveDefinition("Pet", pet), "a Definition never tags itself")
}

func TestResolveResponses(t *testing.T) {
	doc, r := setup(t, store, DefaultOptions())
	pet, ok := r.Resource("/pets")
	require.True(t, ok)
	assert.Equal(t, "Pet", pet.Name)

	t.Run("direct reference", func(t *testing.T) {
		op := operation(t, doc, "/pets/{petId}", "get")
		assert.Equal(t, 1, r.ResolveResponses(op, pet))
		assert.Equal(t, "found <meqa Pet>", swagger.Description(op.Responses[0].Node))
	})

	t.Run("inline leaves use the resource", func(t *testing.T) {
		op := operation(t, doc, "/pets", "get")
		assert.Equal(t, 2, r.ResolveResponses(op, pet))
		props := swagger.Classify(op.Responses[0].Schema).Properties
		assert.Equal(t, "<meqa Pet.id>", swagger.Description(props[0].Value))
		assert.Equal(t, "<meqa Pet.name>", swagger.Description(props[1].Value))
		assert.Equal(t, "listed", swagger.Description(op.Responses[0].Node))
	})
}

func TestResponseDefinition(t *testing.T) {
	doc, r := setup(t, store, DefaultOptions())

	def, ok := r.ResponseDefinition(operation(t, doc, "/pets/{petId}", "get"))
	require.True(t, ok)
	assert.Equal(t, "Pet", def.Name)

	_, ok = r.ResponseDefinition(operation(t, doc, "/pets", "post"))
	assert.False(t, ok)
}

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		style  OperationStyle
		want   string
	}{
		{name: "create", method: "post", style: StyleVerb, want: "Add a new pet to the store <meqa Pet>"},
		{name: "get is never guessed", method: "get", style: StyleVerb, want: "<meqa Pet>"},
		{name: "put is never guessed", method: "put", style: StyleVerb, want: "Update an existing pet <meqa Pet>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, r := setup(t, store, Options{OperationStyle: tt.style})
			pet, ok := r.Resource("/pets")
			require.True(t, ok)
			op := operation(t, doc, "/pets", tt.method)

			assert.True(t, r.ResolveOperation(op, pet))
			assert.Equal(t, tt.want, swagger.Description(op.Node))
			assert.False(t, r.ResolveOperation(op, pet), "tagged operations are skipped")
		})
	}
}

func TestResolveOperation_PostVerb(t *testing.T) {
	src := `swagger: "2.0"
paths:
  /pets:
    post:
      summary: Update an existing pet
      responses: {}
definitions:
  Pet:
    properties:
      id:
        type: integer
`
	for style, want := range map[OperationStyle]string{
		StyleVerb:   "<meqa Pet..update>",
		StyleMethod: "<meqa Pet..put>",
	} {
		t.Run(string(style), func(t *testing.T) {
			doc, r := setup(t, src, Options{OperationStyle: style})
			pet, ok := r.Resource("/pets")
			require.True(t, ok)
			op := operation(t, doc, "/pets", "post")

			require.True(t, r.ResolveOperation(op, pet))
			assert.Equal(t, want, swagger.Description(op.Node))
		})
	}
}

func TestGuessVerb(t *testing.T) {
	_, r := setup(t, store, DefaultOptions())
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{text: "Add a new pet to the store", want: "create", ok: true},
		{text: "Updates a pet with form data", want: "update", ok: true},
		{text: "Remove the order", want: "delete", ok: true},
		{text: "Fetch the <b>inventory</b>", want: "retrieve", ok: true},
		{text: "Pets", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, ok := r.GuessVerb(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v.Name)
		})
	}
}

func TestObserver(t *testing.T) {
	rec := &recorder{}
	doc, r := setup(t, store, Options{Observer: rec})
	op := operation(t, doc, "/pets/{petId}", "get")

	r.ResolveParameter("/pets/{petId}", "get", op.Parameters[0])
	assert.Equal(t, 1, rec.visited[SiteParameter])
	assert.Equal(t, []string{"<meqa Pet.id>"}, rec.tagged)
}

func TestShouldTag(t *testing.T) {
	assert.True(t, ShouldTag(param("{description: plain}")))
	assert.False(t, ShouldTag(param("{description: x <meqa Pet.id>}")))
	assert.False(t, ShouldTag(param("{enum: [a]}")))
	assert.True(t, ShouldTag(param("{description: x <meqa >}")), "malformed tags do not count")
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	bad := DefaultOptions()
	bad.OperationStyle = "noun"
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.SimilarityThreshold = 2
	assert.Error(t, bad.Validate())
}

func TestResponseDefinitions(t *testing.T) {
	src := `swagger: "2.0"
paths:
  /orders:
    get:
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: "#/definitions/Order"
        default:
          description: error
definitions:
  Order:
    properties:
      id:
        type: integer
`
	doc, r := setup(t, src, DefaultOptions())
	op := operation(t, doc, "/orders", "get")
	require.Len(t, op.Responses, 2)

	assert.Equal(t, []string{"Order"}, r.ResponseDefinitions(op.Responses[0]))
	assert.Empty(t, r.ResponseDefinitions(op.Responses[1]))

	def, ok := r.ResponseDefinition(op)
	require.True(t, ok)
	assert.Equal(t, "Order", def.Name)
}
