// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package ld_test

import (
	"log"

	"github.com/veritasld/jsonld/ld"
)

func ExampleJsonLdProcessor_Expand() {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")

	doc := map[string]interface{}{
		"@context": map[string]interface{}{
			"name":      "http://schema.org/name",
			"jobTitle":  "http://schema.org/jobTitle",
			"telephone": "http://schema.org/telephone",
			"url":       map[string]interface{}{"@id": "http://schema.org/url", "@type": "@id"},
		},
		"name":      "Jane Doe",
		"jobTitle":  "Professor",
		"telephone": "(425) 123-4567",
		"url":       "http://www.janedoe.com",
	}

	expanded, err := proc.Expand(doc, options)
	if err != nil {
		log.Println("Error when expanding JSON-LD document:", err)
		return
	}

	ld.PrintDocument("JSON-LD expansion succeeded", expanded)

	// Output:
	// JSON-LD expansion succeeded
	// [
	//   {
	//     "http://schema.org/jobTitle": [
	//       {
	//         "@value": "Professor"
	//       }
	//     ],
	//     "http://schema.org/name": [
	//       {
	//         "@value": "Jane Doe"
	//       }
	//     ],
	//     "http://schema.org/telephone": [
	//       {
	//         "@value": "(425) 123-4567"
	//       }
	//     ],
	//     "http://schema.org/url": [
	//       {
	//         "@id": "http://www.janedoe.com"
	//       }
	//     ]
	//   }
	// ]
}

func ExampleJsonLdProcessor_Compact() {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")

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

	compactedDoc, err := proc.Compact(doc, context, options)
	if err != nil {
		log.Println("Error when compacting JSON-LD document:", err)
		return
	}

	ld.PrintDocument("JSON-LD compact doc", compactedDoc)

	// Output:
	// JSON-LD compact doc
	// {
	//   "@context": {
	//     "dc": "http://purl.org/dc/elements/1.1/",
	//     "ex": "http://example.org/vocab#",
	//     "ex:contains": {
	//       "@type": "@id"
	//     }
	//   },
	//   "@id": "http://example.org/test#book",
	//   "dc:title": "Title",
	//   "ex:contains": "http://example.org/test#chapter"
	// }
}

func ExampleJsonLdProcessor_Flatten() {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")

	doc := map[string]interface{}{
		"@context": []interface{}{
			map[string]interface{}{
				"name": "http://xmlns.com/foaf/0.1/name",
				"homepage": map[string]interface{}{
					"@id":   "http://xmlns.com/foaf/0.1/homepage",
					"@type": "@id",
				},
			},
			map[string]interface{}{
				"ical": "http://www.w3.org/2002/12/cal/ical#",
			},
		},
		"@id":           "http://example.com/speakers#Alice",
		"name":          "Alice",
		"homepage":      "http://xkcd.com/177/",
		"ical:summary":  "Alice Talk",
		"ical:location": "Lyon Convention Centre, Lyon, France",
	}

	flattenedDoc, err := proc.Flatten(doc, nil, options)
	if err != nil {
		log.Println("Error when flattening JSON-LD document:", err)
		return
	}

	ld.PrintDocument("JSON-LD flattened doc", flattenedDoc)

	// Output:
	// JSON-LD flattened doc
	// [
	//   {
	//     "@id": "http://example.com/speakers#Alice",
	//     "http://www.w3.org/2002/12/cal/ical#location": [
	//       {
	//         "@value": "Lyon Convention Centre, Lyon, France"
	//       }
	//     ],
	//     "http://www.w3.org/2002/12/cal/ical#summary": [
	//       {
	//         "@value": "Alice Talk"
	//       }
	//     ],
	//     "http://xmlns.com/foaf/0.1/homepage": [
	//       {
	//         "@id": "http://xkcd.com/177/"
	//       }
	//     ],
	//     "http://xmlns.com/foaf/0.1/name": [
	//       {
	//         "@value": "Alice"
	//       }
	//     ]
	//   }
	// ]
}
