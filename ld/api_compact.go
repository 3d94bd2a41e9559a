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

import "sort"

// containerHas reports whether a container mapping (as returned by
// Context.GetContainer) includes the given keyword.
func containerHas(container []interface{}, val string) bool {
	for _, c := range container {
		if c == val {
			return true
		}
	}
	return false
}

// checkNestProperty verifies that a term's @nest value either is the @nest
// keyword itself or expands to it. Context creation only rejects keywords
// other than @nest, so the expansion check happens here, at compaction time.
func checkNestProperty(activeCtx *Context, nestTerm string) error {
	if nestTerm == "@nest" {
		return nil
	}
	expanded, err := activeCtx.ExpandIri(nestTerm, false, true, nil, nil)
	if err != nil {
		return err
	}
	if expanded != "@nest" {
		return NewJsonLdError(InvalidNestValue,
			"nested property must have an @nest value resolving to @nest, got "+nestTerm)
	}
	return nil
}

// nestTargetFor returns the map that compacted values of itemActiveProperty
// should be written into: result itself, unless the term has a @nest entry,
// in which case a (possibly newly created) nested map under that alias.
func nestTargetFor(activeCtx *Context, result map[string]interface{}, itemActiveProperty string) (map[string]interface{}, error) {
	td := activeCtx.GetTermDefinition(itemActiveProperty)
	if td == nil {
		return result, nil
	}
	nestVal, hasNest := td["@nest"]
	if !hasNest {
		return result, nil
	}
	nestTerm, _ := nestVal.(string)
	if nestTerm == "" {
		return result, nil
	}
	if err := checkNestProperty(activeCtx, nestTerm); err != nil {
		return nil, err
	}
	nestMap, isMap := result[nestTerm].(map[string]interface{})
	if !isMap {
		nestMap = make(map[string]interface{})
		result[nestTerm] = nestMap
	}
	return nestMap, nil
}

// Compact operation compacts the given input using the context
// according to the steps in the Compaction Algorithm:
//
// http://www.w3.org/TR/json-ld-api/#compaction-algorithm
//
// Returns the compacted JSON-LD object.
// Returns an error if there was an error during compaction.
func (api *JsonLdApi) Compact(activeCtx *Context, activeProperty string, element interface{},
	compactArrays bool) (interface{}, error) {
	// 2)
	if elementList, isList := element.([]interface{}); isList {
		// 2.1)
		result := make([]interface{}, 0)
		// 2.2)
		for _, item := range elementList {
			// 2.2.1)
			compactedItem, err := api.Compact(activeCtx, activeProperty, item, compactArrays)
			if err != nil {
				return nil, err
			}
			// 2.2.2)
			if compactedItem != nil {
				result = append(result, compactedItem)
			}
		}
		// 2.3)
		if compactArrays && len(result) == 1 && len(activeCtx.GetContainer(activeProperty)) == 0 {
			return result[0], nil
		}
		// 2.4)
		return result, nil
	}

	// 3)
	elem, isMap := element.(map[string]interface{})
	if !isMap {
		// 2) (scalars pass through unchanged)
		return element, nil
	}

	// activate any @type-scoped context carried by the element's own @type
	// values before compacting the rest of the element, mirroring expansion's
	// handling of type-scoped contexts.
	if typeVal, hasType := elem["@type"]; hasType {
		types := make([]string, 0)
		for _, t := range Arrayify(typeVal) {
			if typeStr, isString := t.(string); isString {
				types = append(types, typeStr)
			}
		}
		sort.Strings(types)
		for _, t := range types {
			td := activeCtx.GetTermDefinition(t)
			if td == nil {
				continue
			}
			if ctx, hasCtx := td["@context"]; hasCtx {
				newCtx, err := activeCtx.Parse(ctx)
				if err != nil {
					return nil, err
				}
				activeCtx = newCtx
			}
		}
	}

	// 4
	_, containsValue := elem["@value"]
	_, containsID := elem["@id"]
	_, containsIndex := elem["@index"]
	idOnly := containsID && (len(elem) == 1 || (len(elem) == 2 && containsIndex))
	if containsValue || idOnly {
		compactedValue, err := activeCtx.CompactValue(activeProperty, elem)
		if err != nil {
			return nil, err
		}
		_, isMap := compactedValue.(map[string]interface{})
		_, isList := compactedValue.([]interface{})
		if !(isMap || isList) {
			return compactedValue, nil
		}
	}
	// 5)
	insideReverse := activeProperty == "@reverse"

	// 6)
	result := make(map[string]interface{})
	// 7)
	for _, expandedProperty := range GetOrderedKeys(elem) {
		expandedValue := elem[expandedProperty]

		// 7.1)
		if expandedProperty == "@id" || expandedProperty == "@type" {
			var compactedValue interface{}
			var err error

			// 7.1.1)
			if expandedValueStr, isString := expandedValue.(string); isString {
				compactedValue, err = activeCtx.CompactIri(expandedValueStr, nil, expandedProperty == "@type", false)
				if err != nil {
					return nil, err
				}
			} else { // 7.1.2)
				types := make([]interface{}, 0)
				// 7.1.2.2)
				for _, expandedTypeVal := range expandedValue.([]interface{}) {
					expandedType := expandedTypeVal.(string)
					compactedType, err := activeCtx.CompactIri(expandedType, nil, true, false)
					if err != nil {
						return nil, err
					}
					types = append(types, compactedType)
				}
				// 7.1.2.3)
				if len(types) == 1 {
					compactedValue = types[0]
				} else {
					compactedValue = types
				}
			}

			// 7.1.3)
			alias, err := activeCtx.CompactIri(expandedProperty, nil, true, false)
			if err != nil {
				return nil, err
			}
			// 7.1.4)
			result[alias] = compactedValue
			continue
		}

		// 7.2)
		if expandedProperty == "@reverse" {
			// 7.2.1)
			compactedObject, err := api.Compact(activeCtx, "@reverse", expandedValue, compactArrays)
			if err != nil {
				return nil, err
			}
			compactedValue := compactedObject.(map[string]interface{})
			// 7.2.2)
			for _, property := range GetKeys(compactedValue) {
				value := compactedValue[property]
				// 7.2.2.1)
				if activeCtx.IsReverseProperty(property) {
					// 7.2.2.1.1)
					valueList, isList := value.([]interface{})
					if (containerHas(activeCtx.GetContainer(property), "@set") || !compactArrays) && !isList {
						result[property] = []interface{}{value}
					}
					// 7.2.2.1.2)
					if _, present := result[property]; !present {
						result[property] = value
					} else { // 7.2.2.1.3)
						propertyValueList, isPropertyList := result[property].([]interface{})
						if !isPropertyList {
							propertyValueList = []interface{}{result[property]}
						}
						if isList {
							propertyValueList = append(propertyValueList, valueList...)
						} else {
							propertyValueList = append(propertyValueList, value)
						}
						result[property] = propertyValueList
					}
					// 7.2.2.1.4)
					delete(compactedValue, property)
				}

			}
			// 7.2.3)
			if len(compactedValue) > 0 {
				// 7.2.3.1)
				alias, err := activeCtx.CompactIri("@reverse", nil, true, false)
				if err != nil {
					return nil, err
				}
				// 7.2.3.2)
				result[alias] = compactedValue
			}
			// 7.2.4)
			continue
		}
		// 7.3)
		if expandedProperty == "@index" && containerHas(activeCtx.GetContainer(activeProperty), "@index") {
			continue
		} else if expandedProperty == "@index" || expandedProperty == "@value" ||
			expandedProperty == "@language" || expandedProperty == "@direction" { // 7.4)
			// 7.4.1)
			alias, err := activeCtx.CompactIri(expandedProperty, nil, true, false)
			if err != nil {
				return nil, err
			}
			// 7.4.2)
			result[alias] = expandedValue
			continue
		}

		// 7.4a) @included passes through: each member is a node object and is
		// compacted like any other node, grouped under its alias.
		if expandedProperty == "@included" {
			compactedValue, err := api.Compact(activeCtx, "@included", expandedValue, compactArrays)
			if err != nil {
				return nil, err
			}
			alias, err := activeCtx.CompactIri("@included", nil, true, false)
			if err != nil {
				return nil, err
			}
			if _, isList := compactedValue.([]interface{}); !isList {
				compactedValue = []interface{}{compactedValue}
			}
			result[alias] = compactedValue
			continue
		}

		// NOTE: expanded value must be an array due to expansion
		// algorithm.

		// 7.5)
		expandedValueList, isList := expandedValue.([]interface{})
		if isList && len(expandedValueList) == 0 {
			// 7.5.1)
			itemActiveProperty, err := activeCtx.CompactIri(expandedProperty, expandedValue, true, insideReverse)
			if err != nil {
				return nil, err
			}
			// 7.5.2)
			nestResult, err := nestTargetFor(activeCtx, result, itemActiveProperty)
			if err != nil {
				return nil, err
			}
			itemActivePropertyVal, present := nestResult[itemActiveProperty]
			if !present {
				nestResult[itemActiveProperty] = make([]interface{}, 0)
			} else {
				if _, isList := itemActivePropertyVal.([]interface{}); !isList {
					nestResult[itemActiveProperty] = []interface{}{itemActivePropertyVal}
				}
			}
		}

		// 7.6)
		for _, expandedItem := range expandedValueList {
			// 7.6.1)
			itemActiveProperty, err := activeCtx.CompactIri(expandedProperty, expandedItem, true, insideReverse)
			if err != nil {
				return nil, err
			}
			// activate any property-scoped context before compacting the
			// item itself.
			itemCtx := activeCtx
			if td := activeCtx.GetTermDefinition(itemActiveProperty); td != nil {
				if ctx, hasCtx := td["@context"]; hasCtx {
					newCtx, err := activeCtx.Parse(ctx)
					if err != nil {
						return nil, err
					}
					itemCtx = newCtx
				}
			}
			// 7.6.2)
			container := itemCtx.GetContainer(itemActiveProperty)

			// get @list value if appropriate
			expandedItemMap, isItemMap := expandedItem.(map[string]interface{})
			list, containsList := expandedItemMap["@list"]
			isListObject := isItemMap && containsList

			// 7.6.3)
			var elementToCompact interface{}
			if isListObject {
				elementToCompact = list
			} else {
				elementToCompact = expandedItem
			}
			compactedItem, err := api.Compact(itemCtx, itemActiveProperty, elementToCompact, compactArrays)
			if err != nil {
				return nil, err
			}

			nestResult, err := nestTargetFor(itemCtx, result, itemActiveProperty)
			if err != nil {
				return nil, err
			}

			// 7.6.4)
			if isListObject {
				// 7.6.4.1)

				if _, isCompactedList := compactedItem.([]interface{}); !isCompactedList {
					compactedItem = []interface{}{compactedItem}
				}
				// 7.6.4.2)
				if !containerHas(container, "@list") {
					// 7.6.4.2.1)
					wrapper := make(map[string]interface{})
					listAlias, err := itemCtx.CompactIri("@list", nil, true, false)
					if err != nil {
						return nil, err
					}
					wrapper[listAlias] = compactedItem
					compactedItem = wrapper

					// 7.6.4.2.2)
					if indexVal, containsIndex := expandedItemMap["@index"]; containsIndex {
						indexAlias, err := itemCtx.CompactIri("@index", nil, true, false)
						if err != nil {
							return nil, err
						}
						wrapper[indexAlias] = indexVal
					}
				} else if _, present := nestResult[itemActiveProperty]; present { // 7.6.4.3)
					return nil, NewJsonLdError(CompactionToListOfLists,
						"There cannot be two list objects associated with an active property that has a container mapping")
				}
			}
			// 7.6.5)
			if containerHas(container, "@language") || containerHas(container, "@index") ||
				containerHas(container, "@id") || containerHas(container, "@type") {
				// 7.6.5.1)

				var mapObject map[string]interface{}
				if v, present := nestResult[itemActiveProperty]; present {
					mapObject, _ = v.(map[string]interface{})
				}
				if mapObject == nil {
					mapObject = make(map[string]interface{})
					nestResult[itemActiveProperty] = mapObject
				}

				mapContainerKey := "@index"
				switch {
				case containerHas(container, "@language"):
					mapContainerKey = "@language"
				case containerHas(container, "@id"):
					mapContainerKey = "@id"
				case containerHas(container, "@type"):
					mapContainerKey = "@type"
				}

				// 7.6.5.2)
				compactedItemMap, isCompactedMap := compactedItem.(map[string]interface{})
				if mapContainerKey == "@language" {
					if compactedItemValue, containsValue := compactedItemMap["@value"]; isCompactedMap && containsValue {
						compactedItem = compactedItemValue
					}
				} else if mapContainerKey == "@type" && isCompactedMap {
					typeAlias, err := itemCtx.CompactIri("@type", nil, true, false)
					if err != nil {
						return nil, err
					}
					if len(compactedItemMap) == 1 {
						if _, onlyType := compactedItemMap[typeAlias]; onlyType {
							compactedItem = make(map[string]interface{})
						}
					} else {
						stripped := make(map[string]interface{}, len(compactedItemMap))
						for k, v := range compactedItemMap {
							if k != typeAlias {
								stripped[k] = v
							}
						}
						compactedItem = stripped
					}
				}

				// 7.6.5.3)
				var mapKey string
				if mapContainerKey == "@id" {
					idVal, _ := expandedItemMap["@id"]
					compactedID, err := itemCtx.CompactIri(idVal.(string), nil, false, false)
					if err != nil {
						return nil, err
					}
					mapKey = compactedID
				} else if keyVal, present := expandedItemMap[mapContainerKey]; present {
					mapKey, _ = keyVal.(string)
				} else {
					mapKey = "@none"
				}
				// 7.6.5.4)
				mapValue, hasMapKey := mapObject[mapKey]
				if !hasMapKey {
					mapObject[mapKey] = compactedItem
				} else {
					mapValueList, isList := mapValue.([]interface{})
					var tmp []interface{}
					if !isList {
						tmp = []interface{}{mapValue}
					} else {
						tmp = mapValueList
					}
					tmp = append(tmp, compactedItem)
					mapObject[mapKey] = tmp
				}
			} else { // 7.6.6)
				// 7.6.6.1)
				_, isCompactedList := compactedItem.([]interface{})
				check := (!compactArrays || containerHas(container, "@set") || containerHas(container, "@list") ||
					expandedProperty == "@list" || expandedProperty == "@graph") && !isCompactedList
				if check {
					compactedItem = []interface{}{compactedItem}
				}
				// 7.6.6.2)
				itemActivePropertyVal, present := nestResult[itemActiveProperty]
				if !present {
					nestResult[itemActiveProperty] = compactedItem
				} else {
					itemActivePropertyValueList, isList := itemActivePropertyVal.([]interface{})
					if !isList {
						itemActivePropertyValueList = []interface{}{itemActivePropertyVal}
						nestResult[itemActiveProperty] = itemActivePropertyValueList
					}
					compactedItemList, isList := compactedItem.([]interface{})
					if isList {
						itemActivePropertyValueList = append(itemActivePropertyValueList, compactedItemList...)
					} else {
						itemActivePropertyValueList = append(itemActivePropertyValueList, compactedItem)
					}
					nestResult[itemActiveProperty] = itemActivePropertyValueList
				}
			}
		}
	}
	// 8)
	return result, nil
}
