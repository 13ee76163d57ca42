package fiscalqr

// FieldID identifies one field of the invoice QR payload, using the key
// letters defined by the tax authority's technical specification.
type FieldID string

const (
	// FieldA is the issuer's TIN (NIF) without country prefix.
	FieldA FieldID = "A"
	// FieldB is the buyer's TIN.
	FieldB FieldID = "B"
	// FieldC is the buyer's country.
	FieldC FieldID = "C"
	// FieldD is the document type, per the SAF-T (PT) type table.
	FieldD FieldID = "D"
	// FieldE is the document status, per the SAF-T (PT) status table.
	FieldE FieldID = "E"
	// FieldF is the document date, format yyyyMMdd.
	FieldF FieldID = "F"
	// FieldG is the unique identification of the document, e.g. "FT A/999".
	FieldG FieldID = "G"
	// FieldH is the ATCUD, e.g. "CSDF7T5H-999".
	FieldH FieldID = "H"

	// FieldI1 is the mainland fiscal region indicator ("PT", or "0" for a
	// document without any VAT rate indication).
	FieldI1 FieldID = "I1"
	// FieldI2 is the VAT-exempt tax base of the mainland region.
	FieldI2 FieldID = "I2"
	// FieldI3 is the tax base at the reduced rate.
	FieldI3 FieldID = "I3"
	// FieldI4 is the total VAT at the reduced rate.
	FieldI4 FieldID = "I4"
	// FieldI5 is the tax base at the intermediate rate.
	FieldI5 FieldID = "I5"
	// FieldI6 is the total VAT at the intermediate rate.
	FieldI6 FieldID = "I6"
	// FieldI7 is the tax base at the normal rate.
	FieldI7 FieldID = "I7"
	// FieldI8 is the total VAT at the normal rate.
	FieldI8 FieldID = "I8"

	// FieldJ1 is the Azores fiscal region indicator ("PT-AC").
	FieldJ1 FieldID = "J1"
	FieldJ2 FieldID = "J2"
	FieldJ3 FieldID = "J3"
	FieldJ4 FieldID = "J4"
	FieldJ5 FieldID = "J5"
	FieldJ6 FieldID = "J6"
	FieldJ7 FieldID = "J7"
	FieldJ8 FieldID = "J8"

	// FieldK1 is the Madeira fiscal region indicator ("PT-MA").
	FieldK1 FieldID = "K1"
	FieldK2 FieldID = "K2"
	FieldK3 FieldID = "K3"
	FieldK4 FieldID = "K4"
	FieldK5 FieldID = "K5"
	FieldK6 FieldID = "K6"
	FieldK7 FieldID = "K7"
	FieldK8 FieldID = "K8"

	// FieldL is the total not subject / non-taxable in VAT.
	FieldL FieldID = "L"
	// FieldM is the total stamp tax.
	FieldM FieldID = "M"
	// FieldN is the TaxPayable total (VAT plus stamp tax).
	FieldN FieldID = "N"
	// FieldO is the GrossTotal of the document.
	FieldO FieldID = "O"
	// FieldP is the withholding tax amount.
	FieldP FieldID = "P"
	// FieldQ is a 4-character slice of the document hash.
	FieldQ FieldID = "Q"
	// FieldR is the software certificate number.
	FieldR FieldID = "R"
	// FieldS is free text (payment references etc.), no asterisks allowed.
	FieldS FieldID = "S"
)

// allFields lists every FieldID in official catalog order. The validation
// engine iterates this slice, so mandatory-but-missing synthesis follows
// the same order.
var allFields = []FieldID{
	FieldA, FieldB, FieldC, FieldD, FieldE, FieldF, FieldG, FieldH,
	FieldI1, FieldI2, FieldI3, FieldI4, FieldI5, FieldI6, FieldI7, FieldI8,
	FieldJ1, FieldJ2, FieldJ3, FieldJ4, FieldJ5, FieldJ6, FieldJ7, FieldJ8,
	FieldK1, FieldK2, FieldK3, FieldK4, FieldK5, FieldK6, FieldK7, FieldK8,
	FieldL, FieldM, FieldN, FieldO, FieldP, FieldQ, FieldR, FieldS,
}

// AllFields returns every known FieldID in catalog order.
func AllFields() []FieldID {
	out := make([]FieldID, len(allFields))
	copy(out, allFields)
	return out
}

// ParseFieldID resolves a raw key against the catalog. The match is exact
// and case-sensitive.
func ParseFieldID(key string) (FieldID, bool) {
	id := FieldID(key)
	if _, ok := catalog[id]; !ok {
		return "", false
	}
	return id, true
}
