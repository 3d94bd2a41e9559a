// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ld_test

import (
	"testing"

	. "github.com/veritasld/jsonld/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonLdProcessor_Expand(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []interface{}
	}{
		{
			name: "simple term expansion",
			input: map[string]interface{}{
				"@context": map[string]interface{}{
					"name": "http://xmlns.com/foaf/0.1/name",
				},
				"@id":  "http://example.org/test",
				"name": "Manu Sporny",
			},
			expected: []interface{}{
				map[string]interface{}{
					"@id": "http://example.org/test",
					"http://xmlns.com/foaf/0.1/name": []interface{}{
						map[string]interface{}{"@value": "Manu Sporny"},
					},
				},
			},
		},
		{
			name: "type coercion to @id",
			input: map[string]interface{}{
				"@context": map[string]interface{}{
					"knows": map[string]interface{}{
						"@id":   "http://xmlns.com/foaf/0.1/knows",
						"@type": "@id",
					},
				},
				"@id":   "http://example.org/manu",
				"knows": "http://example.org/gregg",
			},
			expected: []interface{}{
				map[string]interface{}{
					"@id": "http://example.org/manu",
					"http://xmlns.com/foaf/0.1/knows": []interface{}{
						map[string]interface{}{"@id": "http://example.org/gregg"},
					},
				},
			},
		},
		{
			name: "language-tagged string",
			input: map[string]interface{}{
				"@context": map[string]interface{}{
					"@language": "ja",
					"name":      "http://xmlns.com/foaf/0.1/name",
				},
				"name": "花澄",
			},
			expected: []interface{}{
				map[string]interface{}{
					"http://xmlns.com/foaf/0.1/name": []interface{}{
						map[string]interface{}{"@value": "花澄", "@language": "ja"},
					},
				},
			},
		},
	}

	proc := NewJsonLdProcessor()
	opts := NewJsonLdOptions("")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expanded, err := proc.Expand(tt.input, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expanded)
		})
	}
}

func TestJsonLdProcessor_Compact(t *testing.T) {
	proc := NewJsonLdProcessor()
	opts := NewJsonLdOptions("")

	doc := map[string]interface{}{
		"@id": "http://example.org/test#book",
		"http://example.org/vocab#contains": map[string]interface{}{
			"@id": "http://example.org/test#chapter",
		},
		"http://purl.org/dc/elements/1.1/title": "Title",
	}

	context := map[string]interface{}{
		"@context": map[string]interface{}{
			"dc": "http://purl.org/dc/elements/1.1/",
			"ex": "http://example.org/vocab#",
			"ex:contains": map[string]interface{}{
				"@type": "@id",
			},
		},
	}

	compacted, err := proc.Compact(doc, context, opts)
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/test#book", compacted["@id"])
	assert.Equal(t, "Title", compacted["dc:title"])
	assert.Equal(t, "http://example.org/test#chapter", compacted["ex:contains"])
}

func TestJsonLdProcessor_Compact_Nest(t *testing.T) {
	proc := NewJsonLdProcessor()
	opts := NewJsonLdOptions("")

	doc := []interface{}{
		map[string]interface{}{
			"@id":                          "http://example.org/test",
			"http://example.org/vocab#foo": []interface{}{map[string]interface{}{"@value": "bar"}},
		},
	}

	context := map[string]interface{}{
		"@context": map[string]interface{}{
			"ex":          "http://example.org/vocab#",
			"nestedProps": "@nest",
			"foo":         map[string]interface{}{"@id": "ex:foo", "@nest": "nestedProps"},
		},
	}

	compacted, err := proc.Compact(doc, context, opts)
	require.NoError(t, err)

	nested, isMap := compacted["nestedProps"].(map[string]interface{})
	require.True(t, isMap, "expected nestedProps to be an object, got %#v", compacted["nestedProps"])
	assert.Equal(t, "bar", nested["foo"])
}

func TestJsonLdProcessor_Flatten(t *testing.T) {
	proc := NewJsonLdProcessor()
	opts := NewJsonLdOptions("")

	doc := map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://xmlns.com/foaf/0.1/name",
			"knows": map[string]interface{}{
				"@id":   "http://xmlns.com/foaf/0.1/knows",
				"@type": "@id",
			},
		},
		"@id":  "http://example.org/manu",
		"name": "Manu Sporny",
		"knows": map[string]interface{}{
			"@id":  "http://example.org/gregg",
			"name": "Gregg Kellogg",
		},
	}

	flattened, err := proc.Flatten(doc, nil, opts)
	require.NoError(t, err)

	nodes, isList := flattened.([]interface{})
	require.True(t, isList)
	require.Len(t, nodes, 2)

	byID := make(map[string]map[string]interface{})
	for _, n := range nodes {
		node := n.(map[string]interface{})
		byID[node["@id"].(string)] = node
	}

	manu := byID["http://example.org/manu"]
	require.NotNil(t, manu)
	assert.Equal(t,
		[]interface{}{map[string]interface{}{"@id": "http://example.org/gregg"}},
		manu["http://xmlns.com/foaf/0.1/knows"],
	)

	gregg := byID["http://example.org/gregg"]
	require.NotNil(t, gregg)
	assert.Equal(t,
		[]interface{}{map[string]interface{}{"@value": "Gregg Kellogg"}},
		gregg["http://xmlns.com/foaf/0.1/name"],
	)
}

func TestJsonLdProcessor_ExpandCompactRoundTrip(t *testing.T) {
	proc := NewJsonLdProcessor()
	opts := NewJsonLdOptions("")

	context := map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://xmlns.com/foaf/0.1/name",
		},
	}

	doc := map[string]interface{}{
		"@context": context["@context"],
		"@id":      "http://example.org/test",
		"name":     "Manu Sporny",
	}

	expanded, err := proc.Expand(doc, opts)
	require.NoError(t, err)

	compacted, err := proc.Compact(expanded, context, opts)
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/test", compacted["@id"])
	assert.Equal(t, "Manu Sporny", compacted["name"])
}
