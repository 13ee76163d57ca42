// Package euvat talks to the European Commission's VAT and TIN checking
// web services: the VIES checkVatService, which answers whether a VAT
// number is registered for intra-community trade, and the checkTinService,
// which verifies the syntax and structure of a national TIN.
//
// Both services are SOAP over HTTP. The envelopes are tiny and fixed, so
// they are built and decoded with encoding/xml directly instead of a
// SOAP toolkit.
//
// # Usage
//
//	client := euvat.New()
//	vat, err := client.CheckVat(ctx, "PT", "513456789")
//	tin, err := client.CheckTin(ctx, "PT", "513456789")
//
// Greece is "EL" on these services, not "GR".
//
// # Error Handling
//
// Transport problems wrap ErrRequestFailed; a SOAP fault is returned as
// a *Fault carrying the service's code and text. CheckTinResult can be
// turned into a validation verdict with Verdict().
package euvat
