package fiscalqr

import "strings"

// Parse tokenizes and validates a raw QR payload. It returns a non-nil
// *Result unless the payload cannot be tokenized at all, in which case
// the error is a *ParseError. All structural checks and offline business
// rules run here; network enrichment is pkg/enrich's job.
func Parse(raw string) (*Result, error) {
	res := &Result{Fields: make(map[FieldID]*ParsedField, len(allFields))}

	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Key: KeyCodeNotValid}
	}

	if strings.HasSuffix(raw, " ") {
		res.PayloadErrors = append(res.PayloadErrors, KeyEndsWithBlank)
	}
	if strings.HasSuffix(strings.TrimSpace(raw), "*") {
		res.PayloadErrors = append(res.PayloadErrors, KeyEndsWithAsterisk)
	}
	if strings.ContainsAny(raw, "\r\n\t") {
		res.PayloadErrors = append(res.PayloadErrors, KeyControlCharacter)
	}

	trimmed := strings.Trim(raw, "*")
	if trimmed == "" {
		return nil, &ParseError{Key: KeyCodeNotValid}
	}

	// last holds the previous distinct token as "KEY:VALUE"; the ordering
	// check compares whole tokens, so the value takes part in the
	// comparison when two keys are equal up to a prefix. Duplicates do
	// not advance it.
	var last string
	for _, token := range strings.Split(trimmed, "*") {
		id, value, err := parseToken(token)
		if err != nil {
			return nil, err
		}

		if existing, ok := res.Fields[id]; ok {
			existing.Errors = append(existing.Errors, KeyDuplicatedField)
			continue
		}

		field := &ParsedField{ID: id, Value: value, Valid: true}
		res.Fields[id] = field

		combined := string(id) + ":" + value
		if last != "" && last > combined {
			field.Errors = append(field.Errors, KeyFieldOutOfOrder)
		}
		last = combined
	}

	for _, id := range allFields {
		validateField(res, id)
	}
	reconcileVATPairs(res)

	return res, nil
}

// parseToken splits one "KEY:VALUE" token. The value is everything after
// the first colon, so inner colons survive (IBANs in field S).
func parseToken(token string) (FieldID, string, error) {
	key, value, ok := strings.Cut(token, ":")
	if !ok {
		return "", "", &ParseError{Key: KeyFieldNotValid, Token: token}
	}
	id, known := ParseFieldID(key)
	if !known {
		return "", "", &ParseError{Key: KeyFieldNotValid, Token: key}
	}
	return id, value, nil
}

// validateField applies the catalog constraints and the bound business
// rule of one field to the result. Length and format violations
// accumulate without short-circuiting each other; the business rule only
// runs on a field that is still valid after them.
func validateField(res *Result, id FieldID) {
	spec := catalog[id]
	field := res.Fields[id]

	if field == nil {
		if !spec.Mandatory {
			return
		}
		res.Fields[id] = &ParsedField{
			ID:     id,
			Valid:  false,
			Errors: []string{KeyMandatoryMissing},
		}
		return
	}

	if strings.TrimSpace(field.Value) == "" {
		if spec.Mandatory {
			field.invalidate(KeyFieldWithoutValue)
		} else {
			field.invalidate(KeyOptionalWithoutValue)
		}
		return
	}

	if spec.MaxLength > 0 && len([]rune(field.Value)) > spec.MaxLength {
		field.invalidate(KeyValueTooLong)
	}
	if spec.MinLength > 0 && len([]rune(field.Value)) < spec.MinLength {
		field.invalidate(KeyValueTooShort)
	}
	if spec.Regex != nil && !spec.Regex.MatchString(field.Value) {
		field.invalidate(KeyValueRegexMismatch)
	}

	if spec.Binding == nil || !field.Valid {
		return
	}

	out := runRule(res, field.Value, spec.Binding)
	if !out.Valid {
		field.invalidate(out.Errors...)
	}
}

// runRule dispatches a binding to its rule. Dependencies are read from
// the result; absent fields read as "". A panicking rule degrades to a
// plain value_not_valid instead of taking the whole parse down.
func runRule(res *Result, value string, b *Binding) (out RuleResult) {
	defer func() {
		if recover() != nil {
			out = ruleFail(KeyValueNotValid)
		}
	}()

	dep := func(i int) string { return res.Value(b.Deps[i]) }
	deps := func() []string {
		vals := make([]string, len(b.Deps))
		for i := range b.Deps {
			vals[i] = dep(i)
		}
		return vals
	}

	switch b.Rule {
	case ruleIssuerTIN:
		return ValidateIssuerTIN(value)
	case ruleCustomerTIN:
		return ValidateCustomerTIN(value, dep(0))
	case ruleDocType:
		return ValidateDocumentType(value)
	case ruleDocStatus:
		return ValidateDocumentStatus(value, dep(0))
	case ruleDocDate:
		return ValidateDocumentDate(value)
	case ruleATCUD:
		return ValidateATCUD(value, dep(0), dep(1))
	case ruleFiscalRegion:
		return ValidateFiscalRegion(value, deps())
	case ruleDependencyNotEmpty:
		return ValidateDependencyNotEmpty(dep(0))
	case ruleSumEqual:
		return ValidateSumEqual(value, deps())
	}
	return ruleOK()
}

// vatPairs lists the base/amount couples of each VAT rate: (3,4) reduced,
// (5,6) intermediate, (7,8) normal, for every region prefix.
var vatPairs = [][2]FieldID{
	{FieldI3, FieldI4}, {FieldI5, FieldI6}, {FieldI7, FieldI8},
	{FieldJ3, FieldJ4}, {FieldJ5, FieldJ6}, {FieldJ7, FieldJ8},
	{FieldK3, FieldK4}, {FieldK5, FieldK6}, {FieldK7, FieldK8},
}

// reconcileVATPairs enforces that a VAT tax base and its VAT amount
// appear together: when exactly one of a pair is present, the present
// one is marked invalid.
func reconcileVATPairs(res *Result) {
	for _, pair := range vatPairs {
		base, baseOK := res.Fields[pair[0]]
		amount, amountOK := res.Fields[pair[1]]
		if baseOK == amountOK {
			continue
		}
		present := base
		if amountOK {
			present = amount
		}
		present.invalidate(KeyPairedFieldsMustCoexist)
	}
}
