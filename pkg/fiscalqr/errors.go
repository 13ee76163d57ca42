package fiscalqr

import "fmt"

// Stable message keys used across the validation result. The core never
// renders user-facing prose; pkg/messages maps these keys to localized
// text.
const (
	// Hard parse failures.
	KeyCodeNotValid  = "qr_code_is_not_valid"
	KeyFieldNotValid = "qr_code_field_is_not_valid"

	// Payload-level anomalies.
	KeyEndsWithBlank    = "qr_code_can_not_end_with_blank_space"
	KeyEndsWithAsterisk = "qr_code_can_not_end_with_asterisk"
	KeyControlCharacter = "qr_code_can_not_have_line_control_character"

	// Structural field errors.
	KeyDuplicatedField      = "duplicated_field"
	KeyFieldOutOfOrder      = "field_code_is_out_of_order"
	KeyMandatoryMissing     = "field_is_mandatory_but_not_exist"
	KeyFieldWithoutValue    = "field_without_value"
	KeyOptionalWithoutValue = "field_optional_without_value_cannot_be_in_code"
	KeyValueTooLong         = "value_length_greater_than_max_length"
	KeyValueTooShort        = "value_length_less_than_min_length"
	KeyValueRegexMismatch   = "value_format_does_not_respect_regexp"

	// Business rule errors.
	KeyValueNotValid          = "value_not_valid"
	KeyStatusNotValidForType  = "value_not_valid_for_type_of_document"
	KeyDateBefore2021         = "qr_code_not_implemented_before_2021"
	KeyATCUDNeedsDocDate      = "only_can_validate_with_correct_doc_date"
	KeyATCUDZeroOnly          = "without_series_register_id_should_only_zero"
	KeyATCUDWrongDocNumber    = "wrong_atcud_doc_number"
	KeyIssuerFinalConsumer    = "issuer_tin_can_not_be_final_consumer"
	KeyRegionMustBeZero       = "document_without_vat_must_be_zero"
	KeyDependencyWithoutValue = "dependencies_without_values"
	KeyWrongSum               = "dependencies_wrong_sum"
	KeySumNotComputable       = "not_possible_perform_sum_dependencies"

	// Cross-field reconciliation.
	KeyPairedFieldsMustCoexist = "when_fields_paired_both_must_exist"
)

// ParseError aborts the whole parse: the payload could not be tokenized
// into fields at all. Key is one of KeyCodeNotValid or KeyFieldNotValid;
// Token carries the offending token or key when there is one.
type ParseError struct {
	Key   string
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Key
	}
	return fmt.Sprintf("%s: %q", e.Key, e.Token)
}
