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

import "github.com/sirupsen/logrus"

const (
	JsonLd_1_0       = "json-ld-1.0"              //nolint:stylecheck
	JsonLd_1_1       = "json-ld-1.1"              //nolint:stylecheck
	JsonLd_1_1_Frame = "json-ld-1.1-expand-frame" //nolint:stylecheck
)

// WarnFunc is invoked whenever processing hits a non-fatal deviation: a
// reserved-keyword-shaped token that isn't a recognized keyword, found as a
// term, an @id or @reverse value in a term definition, or a key during
// expansion. Language tags are not validated, so an ill-formed BCP-47 tag
// raises no warning. It never stops processing; the default implementation
// logs through Logger.
type WarnFunc func(code string, detail interface{})

// JsonLdOptions type as specified in the JSON-LD-API specification:
// http://www.w3.org/TR/json-ld-api/#the-jsonldoptions-type
type JsonLdOptions struct { //nolint:stylecheck

	// Base options: http://www.w3.org/TR/json-ld-api/#idl-def-JsonLdOptions

	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-base
	Base string
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-compactArrays
	CompactArrays bool
	// CompactToRelative is not consulted by this package: compaction makes
	// an IRI relative to the base IRI whenever it is not compacted against
	// the vocabulary mapping, whatever this field says.
	CompactToRelative bool
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-expandContext
	ExpandContext interface{}
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-processingMode
	ProcessingMode string
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-documentLoader
	DocumentLoader DocumentLoader

	// FrameExpansion relaxes a handful of Expansion Algorithm checks
	// (free-floating values, @default handling) to the degree framing
	// needs. Expansion honors it directly; this module implements no
	// framing algorithm of its own.
	FrameExpansion bool
	// Ordered is not consulted by this package: the algorithms always visit
	// map keys in lexicographic order.
	Ordered bool

	// RDF interop options: carried on the options but not consulted by the
	// algorithms in this package, which perform no RDF dataset conversion.

	UseRdfType            bool
	UseNativeTypes        bool
	ProduceGeneralizedRdf bool
	// RdfDirection selects how @direction round-trips through RDF:
	// "i18n-datatype", "compound-literal", or "" (unset).
	RdfDirection string

	SafeMode bool

	// Logger receives the default Warn callback's output; Warn may be
	// replaced independently of Logger (e.g. by tests capturing warnings).
	Logger *logrus.Logger
	// Warn is invoked for every non-fatal deviation. Defaults to logging
	// through Logger at warn level.
	Warn WarnFunc
}

// NewJsonLdOptions creates and returns new instance of JsonLdOptions with the given base.
func NewJsonLdOptions(base string) *JsonLdOptions { //nolint:stylecheck
	logger := logrus.StandardLogger()
	return &JsonLdOptions{
		Base:                  base,
		CompactArrays:         true,
		ProcessingMode:        JsonLd_1_1,
		DocumentLoader:        NewDefaultDocumentLoader(nil),
		FrameExpansion:        false,
		Ordered:               false,
		UseRdfType:            false,
		UseNativeTypes:        false,
		ProduceGeneralizedRdf: false,
		SafeMode:              false,
		Logger:                logger,
		Warn:                  defaultWarn(logger),
	}
}

// Copy creates a field-by-field copy of JsonLdOptions object; ExpandContext,
// DocumentLoader, Logger and Warn are shared with the original.
func (opt *JsonLdOptions) Copy() *JsonLdOptions {
	return &JsonLdOptions{
		Base:                  opt.Base,
		CompactArrays:         opt.CompactArrays,
		CompactToRelative:     opt.CompactToRelative,
		ExpandContext:         opt.ExpandContext,
		ProcessingMode:        opt.ProcessingMode,
		DocumentLoader:        opt.DocumentLoader,
		FrameExpansion:        opt.FrameExpansion,
		Ordered:               opt.Ordered,
		UseRdfType:            opt.UseRdfType,
		UseNativeTypes:        opt.UseNativeTypes,
		ProduceGeneralizedRdf: opt.ProduceGeneralizedRdf,
		RdfDirection:          opt.RdfDirection,
		SafeMode:              opt.SafeMode,
		Logger:                opt.Logger,
		Warn:                  opt.Warn,
	}
}

// warn routes to opt.Warn, falling back to a fresh default sink if the
// caller built a JsonLdOptions by hand (e.g. JsonLdOptions{}) without one.
func (opt *JsonLdOptions) warn(code string, detail interface{}) {
	if opt.Warn == nil {
		logger := opt.Logger
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		opt.Warn = defaultWarn(logger)
	}
	opt.Warn(code, detail)
}

// defaultWarn builds the default WarnFunc: a structured log line at warn
// level carrying the deviation code and offending detail as fields.
func defaultWarn(logger *logrus.Logger) WarnFunc {
	return func(code string, detail interface{}) {
		logger.WithFields(logrus.Fields{
			"code":   code,
			"detail": detail,
		}).Warn("jsonld: non-fatal deviation")
	}
}
