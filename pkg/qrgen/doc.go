// Package qrgen renders fiscal QR payloads as PNG images: raw bytes, a
// file on disk, or a base64 data URI for embedding in HTML. It wraps
// github.com/skip2/go-qrcode with medium error correction, the level
// the billing rules expect on printed documents.
package qrgen
