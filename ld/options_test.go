package ld

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestJsonLdOptions_Copy(t *testing.T) {
	logger := logrus.StandardLogger()
	warn := func(code string, detail interface{}) {}

	expected := JsonLdOptions{
		Base:                  "base",
		CompactArrays:         true,
		CompactToRelative:     true,
		ProcessingMode:        JsonLd_1_1,
		DocumentLoader:        NewDefaultDocumentLoader(nil),
		FrameExpansion:        true,
		Ordered:               true,
		UseRdfType:            true,
		UseNativeTypes:        true,
		ProduceGeneralizedRdf: true,
		RdfDirection:          "i18n-datatype",
		SafeMode:              true,
		Logger:                logger,
		Warn:                  warn,
	}
	got := expected.Copy()
	assert.Equal(t, expected.Base, got.Base)
	assert.Equal(t, expected.CompactArrays, got.CompactArrays)
	assert.Equal(t, expected.CompactToRelative, got.CompactToRelative)
	assert.Equal(t, expected.ProcessingMode, got.ProcessingMode)
	assert.Equal(t, expected.DocumentLoader, got.DocumentLoader)
	assert.Equal(t, expected.FrameExpansion, got.FrameExpansion)
	assert.Equal(t, expected.Ordered, got.Ordered)
	assert.Equal(t, expected.UseRdfType, got.UseRdfType)
	assert.Equal(t, expected.UseNativeTypes, got.UseNativeTypes)
	assert.Equal(t, expected.ProduceGeneralizedRdf, got.ProduceGeneralizedRdf)
	assert.Equal(t, expected.RdfDirection, got.RdfDirection)
	assert.Equal(t, expected.SafeMode, got.SafeMode)
	assert.Equal(t, expected.Logger, got.Logger)
}
