// Package fiscalqr decodes and validates the textual payload carried by
// Portuguese invoice QR codes (the SAF-T/ATCUD code defined by the tax
// authority). The payload is a `*`-separated list of `KEY:VALUE` fields;
// each field has a fixed identity, mandatory/optional status, length and
// format constraints, and — for many fields — a business rule that also
// reads the values of other fields (TIN checksums, date windows, fiscal
// region dependencies, monetary sum reconciliation).
//
// # Architecture
//
// The package is split into a static field catalog (`field.go`,
// `catalog.go`), a tokenizer and validation engine (`parse.go`), and a
// library of pure business rules (`rules.go`, `doctype.go`, `amount.go`).
// The catalog binds each field to at most one rule from a closed rule
// enumeration; dispatch is a plain switch, there is no reflection and no
// hidden global state, so the package is stateless and goroutine-safe.
//
// # Usage
//
//	result, err := fiscalqr.Parse(rawText)
//	if err != nil {
//	    // the payload could not be tokenized at all
//	}
//	for id, field := range result.Fields {
//	    if !field.Valid {
//	        // field.Errors holds stable message keys, see pkg/messages
//	    }
//	}
//
// # Error Handling
//
// A payload that cannot be tokenized (blank input, a token without a
// colon, an unknown field key) aborts with a *ParseError. Everything else
// is accumulated: per-field errors on the ParsedField entries and
// payload-level anomalies on Result.PayloadErrors. All messages are
// stable keys, never user-facing prose; pkg/messages localizes them.
//
// Network enrichment (remote validation, VIES lookups, certificate
// registry) lives outside this package, see pkg/enrich.
package fiscalqr
