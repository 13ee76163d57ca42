package fiscalqr

import (
	"regexp"
	"strings"
	"time"
)

// RuleResult is the outcome of a single business rule. Errors carries
// stable message keys, never prose.
type RuleResult struct {
	Valid  bool
	Errors []string
}

func ruleOK() RuleResult { return RuleResult{Valid: true} }

func ruleFail(keys ...string) RuleResult {
	return RuleResult{Valid: false, Errors: keys}
}

const rawDateLayout = "20060102"

// finalConsumerTIN is the placeholder TIN of an anonymous final consumer.
const finalConsumerTIN = "999999990"

var (
	tinPTPrefixRx = regexp.MustCompile(`^(1|2|3|45|5|6|70|71|72|74|75|77|78|79|8|90|91|98|99)[0-9]{7,8}$`)
	atcudZeroRx   = regexp.MustCompile(`^0-[0-9]+$`)
	atcudFormatRx = regexp.MustCompile(`^[0-9A-Z]{8,}-[0-9]+$`)
)

// ValidateTINPT checks a Portuguese TIN (NIF): nine digits, a known
// sector prefix and the mod-11 weighted check digit.
func ValidateTINPT(tin string) RuleResult {
	if len(tin) != 9 || !tinPTPrefixRx.MatchString(tin) {
		return ruleFail(KeyValueNotValid)
	}
	checkSum := 0
	for n := 1; n <= 8; n++ {
		checkSum += int(tin[n-1]-'0') * (10 - n)
	}
	checkDigit := 11 - checkSum%11
	if checkDigit > 9 {
		checkDigit = 0
	}
	if int(tin[8]-'0') != checkDigit {
		return ruleFail(KeyValueNotValid)
	}
	return ruleOK()
}

// ValidateIssuerTIN checks field A. The issuer can never be the final
// consumer placeholder TIN.
func ValidateIssuerTIN(tin string) RuleResult {
	if tin == finalConsumerTIN {
		return ruleFail(KeyIssuerFinalConsumer)
	}
	return ValidateTINPT(tin)
}

// ValidateCustomerTIN checks field B against the buyer's country (field
// C). Only Portuguese TINs are verifiable offline; any other country
// passes.
func ValidateCustomerTIN(tin, country string) RuleResult {
	if country == "PT" {
		return ValidateTINPT(tin)
	}
	return ruleOK()
}

// ValidateDocumentType checks field D against the SAF-T (PT) type table.
func ValidateDocumentType(docType string) RuleResult {
	if _, ok := docTypeGroups[docType]; !ok {
		return ruleFail(KeyValueNotValid)
	}
	return ruleOK()
}

// ValidateDocumentStatus checks field E: the status code must exist and
// be compatible with the document type's group.
func ValidateDocumentStatus(status, docType string) RuleResult {
	group, okType := docTypeGroups[docType]
	_, okStatus := statusGroups[status]
	if !okType || !okStatus {
		return ruleFail(KeyValueNotValid)
	}
	if !statusAllows(status, group) {
		return ruleFail(KeyStatusNotValidForType)
	}
	return ruleOK()
}

// ValidateDocumentDate checks field F: a strict yyyyMMdd calendar date
// no earlier than 2021, the year the QR code became mandatory.
func ValidateDocumentDate(raw string) RuleResult {
	date, err := time.Parse(rawDateLayout, raw)
	if err != nil {
		return ruleFail(KeyValueNotValid)
	}
	if date.Year() < 2021 {
		return ruleFail(KeyDateBefore2021)
	}
	return ruleOK()
}

// ValidateATCUD checks field H against the document unique ID (field G)
// and the raw document date (field F). A literal "0" is only acceptable
// for documents dated before 2023, when series registration was not yet
// enforced; otherwise the series code and the document number after the
// dash must line up with field G.
func ValidateATCUD(atcud, docUniqueID, rawDate string) RuleResult {
	date, dateErr := time.Parse(rawDateLayout, rawDate)

	if atcud == "0" {
		if dateErr != nil {
			return ruleFail(KeyATCUDNeedsDocDate)
		}
		if date.Year() < 2023 {
			return ruleOK()
		}
	}
	if atcudZeroRx.MatchString(atcud) {
		return ruleFail(KeyATCUDZeroOnly)
	}
	if len(atcud) > 70 || !atcudFormatRx.MatchString(atcud) {
		return ruleFail(KeyValueNotValid)
	}

	// The document number is the second slash segment; anything after a
	// further slash is not part of it.
	docParts := strings.Split(docUniqueID, "/")
	if len(docParts) < 2 {
		return ruleFail(KeyValueNotValid)
	}
	_, atcudNumber, _ := strings.Cut(atcud, "-")
	if docParts[1] != atcudNumber {
		return ruleFail(KeyATCUDWrongDocNumber)
	}
	return ruleOK()
}

// ValidateFiscalRegion checks a region indicator (I1, J1 or K1) against
// the VAT amount fields it governs: "0" demands all of them blank, a
// region code demands at least one filled.
func ValidateFiscalRegion(region string, amounts []string) RuleResult {
	allEmpty := true
	for _, v := range amounts {
		if strings.TrimSpace(v) != "" {
			allEmpty = false
			break
		}
	}
	if region == "0" {
		if allEmpty {
			return ruleOK()
		}
		return ruleFail(KeyValueNotValid)
	}
	if allEmpty {
		return ruleFail(KeyRegionMustBeZero)
	}
	return ruleOK()
}

// ValidateDependencyNotEmpty checks that the field this one depends on
// (its region indicator) carries a value.
func ValidateDependencyNotEmpty(dependency string) RuleResult {
	if strings.TrimSpace(dependency) != "" {
		return ruleOK()
	}
	return ruleFail(KeyDependencyWithoutValue)
}

// ValidateSumEqual checks that target equals the sum of the addends,
// with exact cents arithmetic. Blank addends count as zero.
func ValidateSumEqual(target string, addends []string) RuleResult {
	want, err := parseCents(target)
	if err != nil {
		return ruleFail(KeySumNotComputable)
	}
	var sum int64
	for _, v := range addends {
		if strings.TrimSpace(v) == "" {
			continue
		}
		cents, err := parseCents(v)
		if err != nil {
			return ruleFail(KeySumNotComputable)
		}
		sum += cents
	}
	if sum != want {
		return ruleFail(KeyWrongSum)
	}
	return ruleOK()
}
