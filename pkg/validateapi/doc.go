// Package validateapi is the client of the remote structural validation
// service. The service receives the raw QR payload and answers with an
// overall status plus per-field errors, which pkg/enrich merges into the
// locally decoded result.
//
// The wire format is owned by the service:
//
//	POST <url>
//	{"qrCode": "<raw payload>"}
//
//	{"status": "OK"|"ERROR", "message": "...", "fieldsError": [{"field": "A", "value": "..."}]}
//
// A response missing status or message is reported as
// ErrMalformedResponse; transport failures are wrapped in ErrRequestFailed.
// The client never interprets field errors, it only carries them.
package validateapi
