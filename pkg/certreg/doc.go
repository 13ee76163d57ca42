// Package certreg looks up billing-software certificates on the tax
// authority's public registry page. The registry has no API: the page
// carries an HTML table (id "m24Table") with one row per certified
// program, so the lookup fetches the page and scans the rows.
//
// The certificate number printed in a QR payload may carry leading
// zeros; the table lists it without them, and Lookup normalizes before
// matching.
//
// A lookup distinguishes four outcomes: the certificate was found
// (StatusOK with the Certificate), the number is not in the registry
// (StatusNotFound), the page could not be fetched or did not contain the
// table (StatusConnectionError), and anything else (StatusUnknown).
// Callers degrade gracefully on the last two.
package certreg
