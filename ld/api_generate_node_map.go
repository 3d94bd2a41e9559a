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

package ld

import (
	"fmt"
	"strings"
)

// nodeMapState threads the arguments that stay constant (or nearly so)
// across a single GenerateNodeMap recursion: the graph map being built and
// the blank node issuer shared by the whole flattening pass. Bundling them
// keeps the recursive calls below readable - the things that actually
// change call to call (the element, the active subject/property, the
// open list) stay as explicit parameters.
type nodeMapState struct {
	graphMap map[string]interface{}
	issuer   *BlankNodeIssuer
}

// GenerateNodeMap walks expanded JSON-LD and records every node it finds
// into graphMap, keyed first by graph name and then by node @id. This is
// the core of the Flattening algorithm: once every node has been filed
// into the map this way, flattening is just "read the map back out as a
// list".
func (api *JsonLdApi) GenerateNodeMap(element interface{}, graphMap map[string]interface{}, activeGraph string,
	issuer *BlankNodeIssuer, activeSubject interface{}, activeProperty string, list map[string]interface{}) (map[string]interface{}, error) {

	st := &nodeMapState{graphMap: graphMap, issuer: issuer}
	return st.visit(element, activeGraph, activeSubject, activeProperty, list)
}

// visit dispatches on the shape of element: an array recurses over its
// entries, a scalar value or list entry is appended to the enclosing list
// (or added as a property value), and anything else is handled as a node
// object by absorbNode.
func (st *nodeMapState) visit(element interface{}, activeGraph string, activeSubject interface{},
	activeProperty string, list map[string]interface{}) (map[string]interface{}, error) {

	if items, isArray := element.([]interface{}); isArray {
		for _, item := range items {
			var err error
			list, err = st.visit(item, activeGraph, activeSubject, activeProperty, list)
			if err != nil {
				return nil, err
			}
		}
		return list, nil
	}

	elem, isNode := element.(map[string]interface{})
	if !isNode {
		return nil, fmt.Errorf("generateNodeMap: expected a map or a list, got %T", element)
	}

	subjectNode := st.subjectTarget(activeGraph, activeSubject)

	relabelBlankTypes(elem, st.issuer)

	if IsValue(element) {
		return appendOrAdd(list, subjectNode, activeProperty, element), nil
	}

	if IsList(element) {
		return st.absorbList(elem, activeGraph, activeSubject, activeProperty, list, subjectNode)
	}

	return list, st.absorbNode(elem, activeGraph, activeSubject, activeProperty, list, subjectNode)
}

// subjectTarget resolves the node (or the graph itself, for the top-level
// call with no active subject) that a scalar value or reference should be
// recorded against.
func (st *nodeMapState) subjectTarget(activeGraph string, activeSubject interface{}) interface{} {
	graph := st.graph(activeGraph)

	if activeSubject == nil {
		return graph
	}
	if subjectID, isString := activeSubject.(string); isString {
		return graph[subjectID]
	}
	return make(map[string]interface{})
}

// graph returns the node map for activeGraph, creating an empty one on
// first reference.
func (st *nodeMapState) graph(activeGraph string) map[string]interface{} {
	if g, ok := st.graphMap[activeGraph]; ok {
		return g.(map[string]interface{})
	}
	g := make(map[string]interface{})
	st.graphMap[activeGraph] = g
	return g
}

// relabelBlankTypes rewrites any blank node label appearing as an @type
// value through the issuer, so type references stay consistent with the
// labels minted for the nodes they describe.
func relabelBlankTypes(elem map[string]interface{}, issuer *BlankNodeIssuer) {
	typeVal, hasType := elem["@type"]
	if !hasType {
		return
	}

	types := Arrayify(typeVal)
	relabelled := make([]interface{}, len(types))
	for i, t := range types {
		typeStr := t.(string)
		if hasBlankNodePrefix(typeStr) {
			typeStr = issuer.IssueID(typeStr)
		}
		relabelled[i] = typeStr
	}

	if IsValue(elem) {
		elem["@type"] = relabelled[0]
	} else {
		elem["@type"] = relabelled
	}
}

// appendOrAdd records value against subjectNode's activeProperty, unless
// an enclosing @list is open, in which case it's appended to that list
// instead.
func appendOrAdd(list map[string]interface{}, subjectNode interface{}, activeProperty string, value interface{}) map[string]interface{} {
	if list == nil {
		AddValue(subjectNode, activeProperty, value, true, false, false, false)
		return nil
	}
	list["@list"] = append(list["@list"].([]interface{}), value)
	return list
}

func (st *nodeMapState) absorbList(elem map[string]interface{}, activeGraph string, activeSubject interface{},
	activeProperty string, list map[string]interface{}, subjectNode interface{}) (map[string]interface{}, error) {

	innerList := map[string]interface{}{"@list": []interface{}{}}
	innerList, err := st.visit(elem["@list"], activeGraph, activeSubject, activeProperty, innerList)
	if err != nil {
		return nil, err
	}
	return appendOrAdd(list, subjectNode, activeProperty, innerList), nil
}

// absorbNode files a node object into the graph: it resolves (minting if
// necessary) the node's @id, merges its @type/@index, links it from its
// referencing property or reverse relationship, then recurses into
// @reverse, @graph, @included and every remaining property.
func (st *nodeMapState) absorbNode(elem map[string]interface{}, activeGraph string, activeSubject interface{},
	activeProperty string, list map[string]interface{}, subjectNode interface{}) error {

	graph := st.graph(activeGraph)
	id := st.resolveNodeID(elem)

	nodeVal, found := graph[id]
	if !found {
		nodeVal = map[string]interface{}{"@id": id}
		graph[id] = nodeVal
	}
	node := nodeVal.(map[string]interface{})

	if subject, isNodeObject := activeSubject.(map[string]interface{}); isNodeObject {
		// activeSubject is itself a node object: we're recording a reverse-property edge.
		AddValue(node, activeProperty, subject, true, false, false, false)
	} else if activeProperty != "" {
		ref := map[string]interface{}{"@id": id}
		appendOrAdd(list, subjectNode, activeProperty, ref)
	}

	if typeVal, hasType := elem["@type"]; hasType {
		AddValue(node, "@type", typeVal, true, false, false, false)
	}

	if err := mergeIndex(node, elem); err != nil {
		return err
	}

	if reverseVal, hasReverse := elem["@reverse"]; hasReverse {
		if err := st.absorbReverse(id, reverseVal.(map[string]interface{}), activeGraph); err != nil {
			return err
		}
	}

	if graphVal, hasGraph := elem["@graph"]; hasGraph {
		if _, err := st.visit(graphVal, id, nil, "", nil); err != nil {
			return err
		}
	}

	if includedVal, hasIncluded := elem["@included"]; hasIncluded {
		if _, err := st.visit(includedVal, activeGraph, nil, "", nil); err != nil {
			return err
		}
	}

	return st.absorbRemainingProperties(elem, node, id, activeGraph)
}

// resolveNodeID returns elem's @id, minting a fresh blank identifier when
// it's absent and relabelling it through the issuer when it's already a
// blank node reference.
func (st *nodeMapState) resolveNodeID(elem map[string]interface{}) string {
	id, hasID := elem["@id"]
	if !hasID || id == nil {
		return st.issuer.IssueID("")
	}
	idStr := id.(string)
	if hasBlankNodePrefix(idStr) {
		return st.issuer.IssueID(idStr)
	}
	return idStr
}

// mergeIndex copies elem's @index onto node, rejecting documents that
// assign conflicting indexes to the same node across multiple references.
func mergeIndex(node, elem map[string]interface{}) error {
	elemIdx, hasIndex := elem["@index"]
	if !hasIndex {
		return nil
	}
	if nodeIdx, found := node["@index"]; found && nodeIdx != elemIdx {
		return NewJsonLdError(ConflictingIndexes, "conflicting @index property detected")
	}
	node["@index"] = elemIdx
	return nil
}

// absorbReverse processes an @reverse block: every referenced node
// becomes the activeSubject for its own visit, so properties end up
// attached in the reversed direction.
func (st *nodeMapState) absorbReverse(referencingID string, reverseMap map[string]interface{}, activeGraph string) error {
	referencedNode := map[string]interface{}{"@id": referencingID}
	for reverseProperty, values := range reverseMap {
		for _, v := range values.([]interface{}) {
			if _, err := st.visit(v, activeGraph, referencedNode, reverseProperty, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// absorbRemainingProperties recurses into every property of elem not
// already consumed above (@id, @type, @index, @reverse, @graph,
// @included), relabelling blank-node property names along the way.
func (st *nodeMapState) absorbRemainingProperties(elem map[string]interface{}, node map[string]interface{}, id, activeGraph string) error {
	for _, property := range GetOrderedKeys(elem) {
		switch property {
		case "@id", "@type", "@index", "@reverse", "@graph", "@included":
			continue
		}

		value := elem[property]

		if hasBlankNodePrefix(property) {
			property = st.issuer.IssueID(property)
		}

		if _, found := node[property]; !found {
			node[property] = []interface{}{}
		}
		if _, err := st.visit(value, activeGraph, id, property, nil); err != nil {
			return err
		}
	}
	return nil
}

// hasBlankNodePrefix reports whether v looks like a blank node identifier
// ("_:" prefix) rather than an absolute or relative IRI.
func hasBlankNodePrefix(v string) bool {
	return strings.HasPrefix(v, "_:")
}
