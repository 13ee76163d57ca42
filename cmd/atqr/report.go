package main

import (
	"fmt"
	"io"

	"github.com/pchouse/atqr/pkg/enrich"
	"github.com/pchouse/atqr/pkg/fiscalqr"
	"github.com/pchouse/atqr/pkg/messages"
)

type fieldReport struct {
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages,omitempty"`
}

type report struct {
	Valid         bool               `json:"valid"`
	PayloadErrors []string           `json:"payloadErrors,omitempty"`
	Fields        []fieldReport      `json:"fields"`
	Enrichment    *enrich.Enrichment `json:"enrichment,omitempty"`
}

// buildReport flattens a decoded result into catalog field order.
func buildReport(res *fiscalqr.Result, enr *enrich.Enrichment) *report {
	rep := &report{
		Valid:         res.Valid(),
		PayloadErrors: res.PayloadErrors,
		Enrichment:    enr,
	}
	for _, id := range fiscalqr.AllFields() {
		field := res.Field(id)
		if field == nil {
			continue
		}
		rep.Fields = append(rep.Fields, fieldReport{
			Field:    string(id),
			Value:    field.Value,
			Valid:    field.Valid,
			Messages: field.Errors,
		})
	}
	return rep
}

// localize replaces stable message keys with catalog texts in place.
// Unknown keys pass through untouched, so already-human text is safe.
func (r *report) localize(catalog *messages.Catalog, lang string) {
	for i, key := range r.PayloadErrors {
		r.PayloadErrors[i] = catalog.Get(lang, key)
	}
	for i := range r.Fields {
		for j, key := range r.Fields[i].Messages {
			r.Fields[i].Messages[j] = catalog.Get(lang, key)
		}
	}
	if r.Enrichment == nil {
		return
	}
	if r.Enrichment.CertificateNote != "" {
		r.Enrichment.CertificateNote = catalog.Get(lang, r.Enrichment.CertificateNote)
	}
	if r.Enrichment.Remote != nil && r.Enrichment.Remote.Message != "" {
		r.Enrichment.Remote.Message = catalog.Get(lang, r.Enrichment.Remote.Message)
	}
}

func (r *report) print(w io.Writer) {
	if r.Valid {
		fmt.Fprintln(w, "VALID")
	} else {
		fmt.Fprintln(w, "INVALID")
	}
	for _, msg := range r.PayloadErrors {
		fmt.Fprintf(w, "payload: %s\n", msg)
	}
	for _, f := range r.Fields {
		status := "ok"
		if !f.Valid {
			status = "invalid"
		}
		fmt.Fprintf(w, "%-3s %-8s %s\n", f.Field, status, f.Value)
		for _, msg := range f.Messages {
			fmt.Fprintf(w, "      - %s\n", msg)
		}
	}
	if r.Enrichment == nil {
		return
	}
	if vat := r.Enrichment.IssuerVAT; vat != nil {
		fmt.Fprintf(w, "issuer VIES: valid=%t %s\n", vat.Valid, vat.Name)
	}
	if vat := r.Enrichment.BuyerVAT; vat != nil {
		fmt.Fprintf(w, "buyer VIES:  valid=%t %s\n", vat.Valid, vat.Name)
	}
	if cert := r.Enrichment.Certificate; cert != nil {
		fmt.Fprintf(w, "certificate: %s (%s, %s)\n", cert.Number, cert.Name, cert.Company)
	}
	if note := r.Enrichment.CertificateNote; note != "" {
		fmt.Fprintf(w, "certificate: %s\n", note)
	}
	if remote := r.Enrichment.Remote; remote != nil {
		fmt.Fprintf(w, "remote validation: %s %s\n", remote.Status, remote.Message)
	}
}
