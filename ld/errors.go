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
)

// ErrorCode is a JSON-LD error code as per spec.
type ErrorCode string

// JsonLdError is a JSON-LD error as defined in the spec.
// See the allowed values and error messages below.
type JsonLdError struct {
	Code    ErrorCode
	Details interface{}
}

const (
	InvalidLocalContext         ErrorCode = "invalid_local_context"
	InvalidRemoteContext        ErrorCode = "invalid_remote_context"
	LoadingDocumentFailed       ErrorCode = "loading_document_failed"
	LoadingRemoteContextFailed  ErrorCode = "loading_remote_context_failed"
	ContextOverflow             ErrorCode = "context_overflow"
	InvalidBaseIRI              ErrorCode = "invalid_base_IRI"
	InvalidVocabMapping         ErrorCode = "invalid_vocab_mapping"
	InvalidDefaultLanguage      ErrorCode = "invalid_default_language"
	InvalidBaseDirection        ErrorCode = "invalid_base_direction"
	InvalidContextEntry         ErrorCode = "invalid_context_entry"
	InvalidContextNullification ErrorCode = "invalid_context_nullification"
	InvalidVersionValue         ErrorCode = "invalid_version_value"
	InvalidImportValue          ErrorCode = "invalid_import_value"
	InvalidPropagateValue       ErrorCode = "invalid_propagate_value"
	ProcessingModeConflict      ErrorCode = "processing_mode_conflict"
	CyclicIRIMapping            ErrorCode = "cyclic_IRI_mapping"
	InvalidTermDefinition       ErrorCode = "invalid_term_definition"
	KeywordRedefinition         ErrorCode = "keyword_redefinition"
	InvalidTypeMapping          ErrorCode = "invalid_type_mapping"
	InvalidReverseProperty      ErrorCode = "invalid_reverse_property"
	InvalidIRIMapping           ErrorCode = "invalid_IRI_mapping"
	InvalidKeywordAlias         ErrorCode = "invalid_keyword_alias"
	InvalidContainerMapping     ErrorCode = "invalid_container_mapping"
	InvalidScopedContext        ErrorCode = "invalid_scoped_context"
	InvalidLanguageMapping      ErrorCode = "invalid_language_mapping"
	InvalidNestValue            ErrorCode = "invalid_nest_value"
	InvalidPrefixValue          ErrorCode = "invalid_prefix_value"
	ProtectedTermRedefinition   ErrorCode = "protected_term_redefinition"
	IRIConfusedWithPrefix       ErrorCode = "IRI_confused_with_prefix"
	CollidingKeywords           ErrorCode = "colliding_keywords"
	InvalidIDValue              ErrorCode = "invalid_id_value"
	InvalidTypeValue            ErrorCode = "invalid_type_value"
	InvalidValueObject          ErrorCode = "invalid_value_object"
	InvalidValueObjectValue     ErrorCode = "invalid_value_object_value"
	InvalidTypedValue           ErrorCode = "invalid_typed_value"
	InvalidLanguageTaggedValue  ErrorCode = "invalid_language_tagged_value"
	InvalidLanguageTaggedString ErrorCode = "invalid_language_tagged_string"
	InvalidIndexValue           ErrorCode = "invalid_index_value"
	InvalidReversePropertyValue ErrorCode = "invalid_reverse_property_value"
	InvalidReversePropertyMap   ErrorCode = "invalid_reverse_property_map"
	InvalidSetOrListObject      ErrorCode = "invalid_set_or_list_object"
	InvalidIncludedValue        ErrorCode = "invalid_included_value"
	ConflictingIndexes          ErrorCode = "conflicting_indexes"

	// Additional codes the reference algorithm raises that spec.md's
	// catalogue folds into the entries above but that are useful to
	// distinguish on the Go side.
	ListOfLists                ErrorCode = "list_of_lists"
	MultipleContextLinkHeaders ErrorCode = "multiple_context_link_headers"
	RecursiveContextInclusion  ErrorCode = "recursive_context_inclusion"
	InvalidLanguageMapValue    ErrorCode = "invalid_language_map_value"
	CompactionToListOfLists    ErrorCode = "compaction_to_list_of_lists"
	InvalidReverseValue        ErrorCode = "invalid_reverse_value"

	// non spec related errors
	SyntaxError    ErrorCode = "syntax_error"
	NotImplemented ErrorCode = "not_implemented"
	InvalidInput   ErrorCode = "invalid_input"
	ParseError     ErrorCode = "parse_error"
	IOError        ErrorCode = "io_error"
	UnknownError   ErrorCode = "unknown_error"
)

func (e JsonLdError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%v: %v", e.Code, e.Details)
	}
	return fmt.Sprintf("%v", e.Code)
}

// NewJsonLdError creates a new instance of JsonLdError.
func NewJsonLdError(code ErrorCode, details interface{}) *JsonLdError {
	return &JsonLdError{Code: code, Details: details}
}

// Unwrap returns Details as an error for errors.Is/errors.As chains, when
// Details happens to be one; otherwise nil.
func (e *JsonLdError) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}
