// Package enrich runs the network lookups that complement a locally
// decoded payload: the remote structural validator, VIES checks of the
// issuer's and buyer's VAT numbers, and the software certificate
// registry.
//
// Enrichment is strictly best-effort. Every lookup that cannot run —
// no collaborator configured, gated by the payload's own values, or
// failed on the wire — simply leaves its slot empty; a failed lookup
// never invalidates a structurally valid payload. The two exceptions
// are deliberate: remote field errors are merged into the result, and a
// certificate number the registry does not know downgrades field R.
//
// The lookups run concurrently and each one writes only its own slot,
// so no synchronization beyond the final WaitGroup is needed. The
// shared result map is only written after all lookups finished.
package enrich
