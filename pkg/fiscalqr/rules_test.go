package fiscalqr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pchouse/atqr/pkg/fiscalqr"
)

func TestValidateTINPT(t *testing.T) {
	t.Parallel()

	t.Run("valid TINs", func(t *testing.T) {
		t.Parallel()
		for _, tin := range []string{
			"129792659", "106493485", "275646530", "387598294",
			"453585035", "578837455", "677364725", "718430328",
			"712104976", "726638242", "745770363", "759962413",
			"777196832", "786222468", "795520298", "805022635",
			"904361381", "915885948", "981784054", "995207968",
			"999999990",
		} {
			out := fiscalqr.ValidateTINPT(tin)
			assert.True(t, out.Valid, "TIN %s should be valid", tin)
			assert.Empty(t, out.Errors)
		}
	})

	t.Run("invalid TINs", func(t *testing.T) {
		t.Parallel()
		for _, tin := range []string{
			"999999999", "129792699", "106499485", "275946530",
			"995207999", "99999990", "9999999909", "1297926599",
			"", "12979265a", "029792659",
		} {
			out := fiscalqr.ValidateTINPT(tin)
			require.False(t, out.Valid, "TIN %s should be invalid", tin)
			assert.Equal(t, []string{"value_not_valid"}, out.Errors)
		}
	})
}

func TestValidateIssuerTIN(t *testing.T) {
	t.Parallel()

	t.Run("final consumer placeholder rejected", func(t *testing.T) {
		t.Parallel()
		out := fiscalqr.ValidateIssuerTIN("999999990")
		require.False(t, out.Valid)
		assert.Equal(t, []string{"issuer_tin_can_not_be_final_consumer"}, out.Errors)
	})

	t.Run("regular TIN accepted", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fiscalqr.ValidateIssuerTIN("129792659").Valid)
	})
}

func TestValidateCustomerTIN(t *testing.T) {
	t.Parallel()

	t.Run("PT buyer checked", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fiscalqr.ValidateCustomerTIN("999999990", "PT").Valid)
		assert.False(t, fiscalqr.ValidateCustomerTIN("999999999", "PT").Valid)
	})

	t.Run("foreign buyer passes through", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fiscalqr.ValidateCustomerTIN("995207999", "ES").Valid)
		assert.True(t, fiscalqr.ValidateCustomerTIN("whatever", "DE").Valid)
	})
}

func TestValidateDocumentType(t *testing.T) {
	t.Parallel()

	for _, docType := range []string{
		"FT", "FS", "FR", "ND", "NC",
		"GR", "GT", "GA", "GC", "GD",
		"CM", "CC", "FC", "FO", "NE", "OU", "OR", "PF",
		"RC", "RG",
		"RP", "RE", "CS", "LD", "RA",
	} {
		assert.True(t, fiscalqr.ValidateDocumentType(docType).Valid, "type %s", docType)
	}

	out := fiscalqr.ValidateDocumentType("AA")
	require.False(t, out.Valid)
	assert.Equal(t, []string{"value_not_valid"}, out.Errors)
}

func TestValidateDocumentStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status, docType string
		valid           bool
		wantErr         string
	}{
		{"N", "FT", true, ""},
		{"A", "RC", true, ""},
		{"T", "GT", true, ""},
		{"T", "FT", false, "value_not_valid_for_type_of_document"},
		{"S", "FT", true, ""},
		{"S", "RP", true, ""},
		{"S", "GT", false, "value_not_valid_for_type_of_document"},
		{"R", "GT", true, ""},
		{"R", "PF", false, "value_not_valid_for_type_of_document"},
		{"F", "PF", true, ""},
		{"F", "RC", false, "value_not_valid_for_type_of_document"},
		{"X", "FT", false, "value_not_valid"},
		{"N", "XX", false, "value_not_valid"},
	}
	for _, tt := range tests {
		out := fiscalqr.ValidateDocumentStatus(tt.status, tt.docType)
		assert.Equal(t, tt.valid, out.Valid, "status %s type %s", tt.status, tt.docType)
		if tt.wantErr != "" {
			require.NotEmpty(t, out.Errors)
			assert.Equal(t, tt.wantErr, out.Errors[0])
		}
	}
}

func TestValidateDocumentDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		valid   bool
		wantErr string
	}{
		{"20210101", true, ""},
		{"20221005", true, ""},
		{"20201231", false, "qr_code_not_implemented_before_2021"},
		{"05102010", false, "value_not_valid"}, // ddMMyyyy
		{"12312002", false, "value_not_valid"}, // MMddyyyy
		{"20210230", false, "value_not_valid"},
		{"2021-01-01", false, "value_not_valid"},
	}
	for _, tt := range tests {
		out := fiscalqr.ValidateDocumentDate(tt.raw)
		assert.Equal(t, tt.valid, out.Valid, "date %s", tt.raw)
		if tt.wantErr != "" {
			require.NotEmpty(t, out.Errors)
			assert.Equal(t, tt.wantErr, out.Errors[0])
		}
	}
}

func TestValidateATCUD(t *testing.T) {
	t.Parallel()

	series := strings.Repeat("A", 8)

	tests := []struct {
		name              string
		atcud, docID, raw string
		valid             bool
		wantErr           string
	}{
		{"zero before 2023", "0", "FT A/999", "20221231", true, ""},
		{"zero from 2023 on", "0", "FT A/999", "20231231", false, "value_not_valid"},
		{"zero without date", "0", "FT A/999", "bad-date", false, "only_can_validate_with_correct_doc_date"},
		{"zero series with number", "0-999", "FT A/999", "20231231", false, "without_series_register_id_should_only_zero"},
		{"series too short", strings.Repeat("A", 7) + "-999", "FT A/999", "20231231", false, "value_not_valid"},
		{"series 9 chars", strings.Repeat("A", 9) + "-999", "FT A/999", "20231231", true, ""},
		{"matching number", series + "-999", "FT A/999", "20231231", true, ""},
		{"mismatched number", series + "-999", "FT A/9999", "20231231", false, "wrong_atcud_doc_number"},
		{"number is the second segment", series + "-99", "FT A/99/1", "20231231", true, ""},
		{"trailing segment not part of number", series + "-991", "FT A/99/1", "20231231", false, "wrong_atcud_doc_number"},
		{"over 70 chars", "C" + strings.Repeat("A", 7) + "-" + strings.Repeat("9", 62), "FT A/" + strings.Repeat("9", 62), "20231231", false, "value_not_valid"},
		{"exactly 70 chars", "D" + strings.Repeat("A", 7) + "-" + strings.Repeat("9", 61), "FT A/" + strings.Repeat("9", 61), "20231231", true, ""},
		{"lowercase series", "csdf7t5h-999", "FT A/999", "20231231", false, "value_not_valid"},
		{"doc id without slash", series + "-999", "FT A999", "20231231", false, "value_not_valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := fiscalqr.ValidateATCUD(tt.atcud, tt.docID, tt.raw)
			assert.Equal(t, tt.valid, out.Valid)
			if tt.wantErr != "" {
				require.NotEmpty(t, out.Errors)
				assert.Equal(t, tt.wantErr, out.Errors[0])
			}
		})
	}
}

func TestValidateFiscalRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		region  string
		amounts []string
		valid   bool
		wantErr string
	}{
		{"zero with no amounts", "0", nil, true, ""},
		{"zero with blank amounts", "0", []string{"", " "}, true, ""},
		{"zero with amounts", "0", []string{"", "0.0"}, false, "value_not_valid"},
		{"region with amounts", "PT", []string{"", "0.0"}, true, ""},
		{"region with single amount", "PT", []string{"0.09"}, true, ""},
		{"region with blank amounts", "PT", []string{"", ""}, false, "document_without_vat_must_be_zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := fiscalqr.ValidateFiscalRegion(tt.region, tt.amounts)
			assert.Equal(t, tt.valid, out.Valid)
			if tt.wantErr != "" {
				require.NotEmpty(t, out.Errors)
				assert.Equal(t, tt.wantErr, out.Errors[0])
			}
		})
	}
}

func TestValidateDependencyNotEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, fiscalqr.ValidateDependencyNotEmpty("PT").Valid)

	out := fiscalqr.ValidateDependencyNotEmpty("  ")
	require.False(t, out.Valid)
	assert.Equal(t, []string{"dependencies_without_values"}, out.Errors)
}

func TestValidateSumEqual(t *testing.T) {
	t.Parallel()

	t.Run("matching sums", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			target  string
			addends []string
		}{
			{"0.00", []string{""}},
			{"999.99", []string{"", "900.99", "", "99.00"}},
			{"99.99", []string{"", "99.99"}},
			{"64000.02", []string{"900.00", "6500.00", "18400.00", "1000.02", "6750.00", "18000.00", "625.00", "3000.00", "8800.00", "25.00"}},
			{"0.40", []string{".40"}},
			{"0.10", []string{"0.095"}}, // half-up at the third decimal
		}
		for _, tt := range tests {
			out := fiscalqr.ValidateSumEqual(tt.target, tt.addends)
			assert.True(t, out.Valid, "target %s addends %v: %v", tt.target, tt.addends, out.Errors)
		}
	})

	t.Run("mismatched sums", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			target  string
			addends []string
		}{
			{"0.00", []string{"1.0"}},
			{"1.00", []string{"0.0"}},
			{"1.00", []string{""}},
			{"999.99", []string{"", "901.99", "", "99.00"}},
			{"99.99", []string{"", "990.99"}},
		}
		for _, tt := range tests {
			out := fiscalqr.ValidateSumEqual(tt.target, tt.addends)
			require.False(t, out.Valid, "target %s addends %v", tt.target, tt.addends)
			assert.Equal(t, []string{"dependencies_wrong_sum"}, out.Errors)
		}
	})

	t.Run("not computable", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			target  string
			addends []string
		}{
			{"", []string{""}},
			{"abc", []string{"1.00"}},
			{"1.00", []string{"abc"}},
			{"1.", []string{"1.00"}},
		}
		for _, tt := range tests {
			out := fiscalqr.ValidateSumEqual(tt.target, tt.addends)
			require.False(t, out.Valid, "target %s addends %v", tt.target, tt.addends)
			assert.Equal(t, []string{"not_possible_perform_sum_dependencies"}, out.Errors)
		}
	})
}
