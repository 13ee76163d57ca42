package fiscalqr

import "regexp"

// ruleKind enumerates the business rules a field can be bound to. The
// set is closed on purpose: dispatch is a switch in runRule, so adding a
// rule means extending the enum, the switch and the catalog together.
type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleIssuerTIN
	ruleCustomerTIN
	ruleDocType
	ruleDocStatus
	ruleDocDate
	ruleATCUD
	ruleFiscalRegion
	ruleDependencyNotEmpty
	ruleSumEqual
)

// Binding ties a field to a business rule and the other fields the rule
// reads. Deps are resolved against the parsed result at validation time;
// an absent dependency reads as the empty string.
type Binding struct {
	Rule ruleKind
	Deps []FieldID
}

// FieldSpec holds the static constraints of one catalog field. A zero
// MinLength or MaxLength means the bound is not checked. The regex, when
// present, must match the whole value.
type FieldSpec struct {
	Mandatory bool
	Regex     *regexp.Regexp
	MinLength int
	MaxLength int
	Binding   *Binding
}

// monetaryRx is the format of every monetary field: two decimal places,
// no thousands separator, no leading zeros on the integer part.
var monetaryRx = regexp.MustCompile(`^(([1-9][0-9]{0,12})|0)\.[0-9]{2}$`)

// countryRx lists the ISO 3166-1 alpha-2 codes accepted for the buyer's
// country, plus the literal "Desconhecido" (unknown buyer).
var countryRx = regexp.MustCompile(`^(AD|AE|AF|AG|AI|AL|AM|AO|AQ|AR|AS|AT|AU|AW|AX|AZ|BA|BB|BD|BE|BF|BG|BH|BI|BJ|BL|BM|BN|BO|BQ|BR|BS|BT|BV|BW|BY|BZ|CA|CC|CD|CF|CG|CH|CI|CK|CL|CM|CN|CO|CR|CU|CV|CW|CX|CY|CZ|DE|DJ|DK|DM|DO|DZ|EC|EE|EG|EH|ER|ES|ET|FI|FJ|FK|FM|FO|FR|GA|GB|GD|GE|GF|GG|GH|GI|GL|GM|GN|GP|GQ|GR|GS|GT|GU|GW|GY|HK|HM|HN|HR|HT|HU|ID|IE|IL|IM|IN|IO|IQ|IR|IS|IT|JE|JM|JO|JP|KE|KG|KH|KI|KM|KN|KP|KR|KW|KY|KZ|LA|LB|LC|LI|LK|LR|LS|LT|LU|LV|LY|MA|MC|MD|ME|MF|MG|MH|MK|ML|MM|MN|MO|MP|MQ|MR|MS|MT|MU|MV|MW|MX|MY|MZ|NA|NC|NE|NF|NG|NI|NL|NO|NP|NR|NU|NZ|OM|PA|PE|PF|PG|PH|PK|PL|PM|PN|PR|PS|PT|PW|PY|QA|RE|RO|RS|RU|RW|SA|SB|SC|SD|SE|SG|SH|SI|SJ|SK|SL|SM|SN|SO|SR|SS|ST|SV|SX|SY|SZ|TC|TD|TF|TG|TH|TJ|TK|TL|TM|TN|TO|TR|TT|TV|TW|TZ|UA|UG|UM|US|UY|UZ|VA|VC|VE|VG|VI|VN|VU|WF|WS|XK|YE|YT|ZA|ZM|ZW|Desconhecido)$`)

// regionDepsI spans every VAT amount field of every region: the "0"
// indicator in I1 asserts the document carries no VAT at all.
var regionDepsI = []FieldID{
	FieldI2, FieldI3, FieldI4, FieldI5, FieldI6, FieldI7, FieldI8,
	FieldJ1, FieldJ2, FieldJ3, FieldJ4, FieldJ5, FieldJ6, FieldJ7, FieldJ8,
	FieldK1, FieldK2, FieldK3, FieldK4, FieldK5, FieldK6, FieldK7, FieldK8,
}

var regionDepsJ = []FieldID{
	FieldJ2, FieldJ3, FieldJ4, FieldJ5, FieldJ6, FieldJ7, FieldJ8,
}

var regionDepsK = []FieldID{
	FieldK2, FieldK3, FieldK4, FieldK5, FieldK6, FieldK7, FieldK8,
}

func monetarySpec(indicator FieldID) FieldSpec {
	return FieldSpec{
		Regex:     monetaryRx,
		MaxLength: 16,
		Binding:   &Binding{Rule: ruleDependencyNotEmpty, Deps: []FieldID{indicator}},
	}
}

// catalog is the full static field table of the QR payload.
var catalog = map[FieldID]FieldSpec{
	FieldA: {
		Mandatory: true,
		Regex:     regexp.MustCompile(`^[1-9][0-9]{8}$`),
		Binding:   &Binding{Rule: ruleIssuerTIN},
	},
	FieldB: {
		Mandatory: true,
		MaxLength: 30,
		Binding:   &Binding{Rule: ruleCustomerTIN, Deps: []FieldID{FieldC}},
	},
	FieldC: {
		Mandatory: true,
		Regex:     countryRx,
	},
	FieldD: {
		Mandatory: true,
		Binding:   &Binding{Rule: ruleDocType},
	},
	FieldE: {
		Mandatory: true,
		Binding:   &Binding{Rule: ruleDocStatus, Deps: []FieldID{FieldD}},
	},
	FieldF: {
		Mandatory: true,
		Binding:   &Binding{Rule: ruleDocDate},
	},
	FieldG: {
		Mandatory: true,
		Regex:     regexp.MustCompile(`^[^ ]+ [^/^ ]+/[0-9]+$`),
		MaxLength: 60,
	},
	FieldH: {
		Mandatory: true,
		MaxLength: 70,
		Binding:   &Binding{Rule: ruleATCUD, Deps: []FieldID{FieldG, FieldF}},
	},

	FieldI1: {
		Mandatory: true,
		Regex:     regexp.MustCompile(`^(0|PT)$`),
		Binding:   &Binding{Rule: ruleFiscalRegion, Deps: regionDepsI},
	},
	FieldI2: monetarySpec(FieldI1),
	FieldI3: monetarySpec(FieldI1),
	FieldI4: monetarySpec(FieldI1),
	FieldI5: monetarySpec(FieldI1),
	FieldI6: monetarySpec(FieldI1),
	FieldI7: monetarySpec(FieldI1),
	FieldI8: monetarySpec(FieldI1),

	FieldJ1: {
		Regex:   regexp.MustCompile(`^PT-AC$`),
		Binding: &Binding{Rule: ruleFiscalRegion, Deps: regionDepsJ},
	},
	FieldJ2: monetarySpec(FieldJ1),
	FieldJ3: monetarySpec(FieldJ1),
	FieldJ4: monetarySpec(FieldJ1),
	FieldJ5: monetarySpec(FieldJ1),
	FieldJ6: monetarySpec(FieldJ1),
	FieldJ7: monetarySpec(FieldJ1),
	FieldJ8: monetarySpec(FieldJ1),

	FieldK1: {
		Regex:     regexp.MustCompile(`^PT-MA$`),
		MaxLength: 16,
		Binding:   &Binding{Rule: ruleFiscalRegion, Deps: regionDepsK},
	},
	FieldK2: monetarySpec(FieldK1),
	FieldK3: monetarySpec(FieldK1),
	FieldK4: monetarySpec(FieldK1),
	FieldK5: monetarySpec(FieldK1),
	FieldK6: monetarySpec(FieldK1),
	FieldK7: monetarySpec(FieldK1),
	FieldK8: monetarySpec(FieldK1),

	FieldL: {Regex: monetaryRx, MaxLength: 16},
	FieldM: {Regex: monetaryRx, MaxLength: 16},
	FieldN: {
		Mandatory: true,
		Regex:     monetaryRx,
		MaxLength: 16,
		Binding: &Binding{Rule: ruleSumEqual, Deps: []FieldID{
			FieldI4, FieldI6, FieldI8,
			FieldJ4, FieldJ6, FieldJ8,
			FieldK4, FieldK6, FieldK8,
			FieldM,
		}},
	},
	FieldO: {
		Mandatory: true,
		Regex:     monetaryRx,
		MaxLength: 16,
		Binding: &Binding{Rule: ruleSumEqual, Deps: []FieldID{
			FieldI2, FieldI3, FieldI5, FieldI7,
			FieldJ2, FieldJ3, FieldJ5, FieldJ7,
			FieldK2, FieldK3, FieldK5, FieldK7,
			FieldL, FieldN,
		}},
	},
	FieldP: {Regex: monetaryRx, MaxLength: 16},
	FieldQ: {Mandatory: true, MinLength: 4, MaxLength: 4},
	FieldR: {
		Mandatory: true,
		Regex:     regexp.MustCompile(`^[0-9]{1,4}$`),
		MaxLength: 4,
	},
	FieldS: {
		Regex:     regexp.MustCompile(`^[^*]+$`),
		MinLength: 1,
		MaxLength: 65,
	},
}

// Spec returns the catalog entry for id.
func Spec(id FieldID) (FieldSpec, bool) {
	s, ok := catalog[id]
	return s, ok
}

func init() {
	// The catalog must be total over allFields and vice versa, otherwise
	// the engine would silently skip fields.
	if len(catalog) != len(allFields) {
		panic("fiscalqr: catalog and field list out of sync")
	}
	for _, id := range allFields {
		if _, ok := catalog[id]; !ok {
			panic("fiscalqr: missing catalog entry for field " + string(id))
		}
	}
}
