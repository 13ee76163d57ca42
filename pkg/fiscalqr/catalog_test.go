package fiscalqr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pchouse/atqr/pkg/fiscalqr"
)

func TestCatalogCoverage(t *testing.T) {
	t.Parallel()

	fields := fiscalqr.AllFields()
	assert.Len(t, fields, 40)

	for _, id := range fields {
		_, ok := fiscalqr.Spec(id)
		assert.True(t, ok, "field %s has no catalog entry", id)
	}
}

func TestCatalogMandatoryFields(t *testing.T) {
	t.Parallel()

	mandatory := map[fiscalqr.FieldID]bool{}
	for _, id := range fiscalqr.AllFields() {
		spec, ok := fiscalqr.Spec(id)
		require.True(t, ok)
		mandatory[id] = spec.Mandatory
	}

	for _, id := range []fiscalqr.FieldID{
		fiscalqr.FieldA, fiscalqr.FieldB, fiscalqr.FieldC, fiscalqr.FieldD,
		fiscalqr.FieldE, fiscalqr.FieldF, fiscalqr.FieldG, fiscalqr.FieldH,
		fiscalqr.FieldI1, fiscalqr.FieldN, fiscalqr.FieldO, fiscalqr.FieldQ,
		fiscalqr.FieldR,
	} {
		assert.True(t, mandatory[id], "field %s should be mandatory", id)
	}
	for _, id := range []fiscalqr.FieldID{
		fiscalqr.FieldI2, fiscalqr.FieldJ1, fiscalqr.FieldK1, fiscalqr.FieldL,
		fiscalqr.FieldM, fiscalqr.FieldP, fiscalqr.FieldS,
	} {
		assert.False(t, mandatory[id], "field %s should be optional", id)
	}
}

func TestCatalogMonetaryFormat(t *testing.T) {
	t.Parallel()

	spec, ok := fiscalqr.Spec(fiscalqr.FieldN)
	require.True(t, ok)
	require.NotNil(t, spec.Regex)

	for _, v := range []string{"0.00", "0.99", "1.00", "9999999999999.99"} {
		assert.True(t, spec.Regex.MatchString(v), "%s should match", v)
	}
	for _, v := range []string{
		"00.00", "1", "1.0", "1.000", ".99", "-1.00", "1,00",
		"01.00", "99999999999999.99", "1.00 ",
	} {
		assert.False(t, spec.Regex.MatchString(v), "%s should not match", v)
	}
}

func TestCatalogDocumentNumberFormat(t *testing.T) {
	t.Parallel()

	spec, ok := fiscalqr.Spec(fiscalqr.FieldG)
	require.True(t, ok)
	require.NotNil(t, spec.Regex)

	assert.True(t, spec.Regex.MatchString("FT A/999"))
	assert.True(t, spec.Regex.MatchString("FS CDVF/12345"))
	assert.False(t, spec.Regex.MatchString("FT A999"))
	assert.False(t, spec.Regex.MatchString("FTA/999"))
	assert.False(t, spec.Regex.MatchString("FT A/999x"))
}

func TestParseFieldID(t *testing.T) {
	t.Parallel()

	id, ok := fiscalqr.ParseFieldID("I1")
	require.True(t, ok)
	assert.Equal(t, fiscalqr.FieldI1, id)

	for _, key := range []string{"", "a", "Z", "I9", "AA", "i1"} {
		_, ok := fiscalqr.ParseFieldID(key)
		assert.False(t, ok, "key %q should be unknown", key)
	}
}

func TestVATRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		region fiscalqr.Region
		band   fiscalqr.VATBand
		want   int
	}{
		{fiscalqr.RegionMainland, fiscalqr.BandNormal, 23},
		{fiscalqr.RegionMainland, fiscalqr.BandReduced, 6},
		{fiscalqr.RegionAzores, fiscalqr.BandIntermediate, 9},
		{fiscalqr.RegionAzores, fiscalqr.BandNormal, 18},
		{fiscalqr.RegionMadeira, fiscalqr.BandNormal, 22},
		{fiscalqr.RegionMadeira, fiscalqr.BandExempt, 0},
	}
	for _, tt := range tests {
		got, ok := fiscalqr.VATRate(tt.region, tt.band)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := fiscalqr.VATRate(fiscalqr.Region("PT-XX"), fiscalqr.BandNormal)
	assert.False(t, ok)
}
