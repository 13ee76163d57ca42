package fiscalqr

// DocGroup classifies SAF-T (PT) document types into the groups the
// status rules reason about.
type DocGroup int

const (
	GroupInvoice DocGroup = iota
	GroupMovement
	GroupWorking
	GroupPayment
	GroupInsurance
)

// docTypeGroups maps every SAF-T (PT) document type code to its group.
var docTypeGroups = map[string]DocGroup{
	// Invoices (table 4.1).
	"FT": GroupInvoice,
	"FS": GroupInvoice,
	"FR": GroupInvoice,
	"ND": GroupInvoice,
	"NC": GroupInvoice,

	// Movement of goods (table 4.2).
	"GR": GroupMovement,
	"GT": GroupMovement,
	"GA": GroupMovement,
	"GC": GroupMovement,
	"GD": GroupMovement,

	// Working documents (table 4.3).
	"CM": GroupWorking,
	"CC": GroupWorking,
	"FC": GroupWorking,
	"FO": GroupWorking,
	"NE": GroupWorking,
	"OU": GroupWorking,
	"OR": GroupWorking,
	"PF": GroupWorking,

	// Payments (table 4.4).
	"RC": GroupPayment,
	"RG": GroupPayment,

	// Insurance-sector documents.
	"RP": GroupInsurance,
	"RE": GroupInsurance,
	"CS": GroupInsurance,
	"LD": GroupInsurance,
	"RA": GroupInsurance,
}

// statusGroups maps each document status code to the groups it can apply
// to. N (normal) and A (canceled) fit any document; T (goods in transit)
// only movement documents; S (self-billing) invoices and insurance; R
// (summary document) everything but working and payment documents; F
// (billed) everything but payments.
var statusGroups = map[string][]DocGroup{
	"N": {GroupInvoice, GroupMovement, GroupWorking, GroupPayment, GroupInsurance},
	"A": {GroupInvoice, GroupMovement, GroupWorking, GroupPayment, GroupInsurance},
	"T": {GroupMovement},
	"S": {GroupInvoice, GroupInsurance},
	"R": {GroupInvoice, GroupMovement, GroupInsurance},
	"F": {GroupInvoice, GroupMovement, GroupWorking, GroupInsurance},
}

// DocTypeGroup returns the group of a SAF-T document type code.
func DocTypeGroup(docType string) (DocGroup, bool) {
	g, ok := docTypeGroups[docType]
	return g, ok
}

// statusAllows reports whether status can be carried by a document of
// the given group. The status code must exist in statusGroups.
func statusAllows(status string, group DocGroup) bool {
	for _, g := range statusGroups[status] {
		if g == group {
			return true
		}
	}
	return false
}
