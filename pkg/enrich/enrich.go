package enrich

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"

	"github.com/pchouse/atqr/pkg/certreg"
	"github.com/pchouse/atqr/pkg/euvat"
	"github.com/pchouse/atqr/pkg/fiscalqr"
	"github.com/pchouse/atqr/pkg/validateapi"
)

// Stable message keys attached by enrichment outcomes.
const (
	KeyProgramNotCertified = "program_not_certified"
	KeyProgramCertNotExist = "program_certificate_not_exist"
)

// viesSkipRx gates VIES lookups on Portuguese TINs: individual and
// domestic-only ranges are not listed in VIES, and the final consumer
// placeholder never is.
var viesSkipRx = regexp.MustCompile(`(^([1-3]|45|70|74|75|8))|999999990`)

// notCertifiedRx matches certificate numbers that mean "no certified
// program": all zeros or the 9999 development placeholder.
var notCertifiedRx = regexp.MustCompile(`^(0{1,4}|9999)$`)

// euCountries lists the member states VIES can answer for. Greece is EL.
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {},
	"EE": {}, "EL": {}, "ES": {}, "FI": {}, "FR": {}, "HR": {}, "HU": {},
	"IE": {}, "IT": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {}, "NL": {},
	"PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
}

// PayloadValidator is the remote structural validation service.
type PayloadValidator interface {
	Validate(ctx context.Context, url, rawPayload string) (*validateapi.Response, error)
}

// VATChecker answers VIES lookups.
type VATChecker interface {
	CheckVat(ctx context.Context, countryCode, vatNumber string) (*euvat.CheckVatResult, error)
}

// CertificateRegistry answers certificate lookups.
type CertificateRegistry interface {
	Lookup(ctx context.Context, number string) (*certreg.Response, error)
}

// Enrichment carries what the lookups found. Empty slots mean the
// corresponding lookup was skipped or failed.
type Enrichment struct {
	Remote      *validateapi.Response `json:"remote,omitempty"`
	IssuerVAT   *euvat.CheckVatResult `json:"issuerVat,omitempty"`
	BuyerVAT    *euvat.CheckVatResult `json:"buyerVat,omitempty"`
	Certificate *certreg.Certificate  `json:"certificate,omitempty"`

	// CertificateNote is a message key describing a negative certificate
	// outcome: program_not_certified or program_certificate_not_exist.
	CertificateNote string `json:"certificateNote,omitempty"`
}

// Enricher orchestrates the lookups. Collaborators may be nil, in which
// case their lookup is skipped. Zero value skips everything.
type Enricher struct {
	validator PayloadValidator
	vat       VATChecker
	registry  CertificateRegistry
	apiURL    string
	logger    *slog.Logger
}

// Option customizes an Enricher.
type Option func(*Enricher)

// WithRemoteValidator wires the remote validation service. An empty url
// disables the lookup even with a validator present.
func WithRemoteValidator(v PayloadValidator, url string) Option {
	return func(e *Enricher) {
		e.validator = v
		e.apiURL = url
	}
}

// WithVATChecker wires the VIES client.
func WithVATChecker(v VATChecker) Option {
	return func(e *Enricher) { e.vat = v }
}

// WithCertificateRegistry wires the certificate registry client.
func WithCertificateRegistry(r CertificateRegistry) Option {
	return func(e *Enricher) { e.registry = r }
}

// WithLogger sets the logger for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Enricher.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich runs every applicable lookup for the decoded result and merges
// the remote findings. The result's structural verdicts are only touched
// by the remote field errors and a registry miss on field R.
func (e *Enricher) Enrich(ctx context.Context, rawPayload string, res *fiscalqr.Result) *Enrichment {
	out := &Enrichment{}

	var wg sync.WaitGroup

	if e.validator != nil && e.apiURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Remote = e.remoteValidate(ctx, rawPayload)
		}()
	}

	if e.vat != nil {
		if issuer, ok := e.issuerLookup(res); ok {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out.IssuerVAT = e.checkVat(ctx, "PT", issuer)
			}()
		}
		if country, tin, ok := e.buyerLookup(res); ok {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out.BuyerVAT = e.checkVat(ctx, country, tin)
			}()
		}
	}

	var certOutcome *certreg.Response
	if e.registry != nil {
		if number, ok := e.certificateLookup(res); ok {
			if notCertifiedRx.MatchString(number) {
				out.CertificateNote = KeyProgramNotCertified
			} else {
				wg.Add(1)
				go func() {
					defer wg.Done()
					certOutcome = e.lookupCertificate(ctx, number)
				}()
			}
		}
	}

	wg.Wait()

	// Merge phase: single goroutine, the only writes to the result.
	if certOutcome != nil {
		switch certOutcome.Status {
		case certreg.StatusOK:
			out.Certificate = certOutcome.Certificate
		case certreg.StatusNotFound:
			out.CertificateNote = KeyProgramCertNotExist
			if field := res.Field(fiscalqr.FieldR); field != nil {
				field.Valid = false
				field.Errors = append(field.Errors, KeyProgramCertNotExist)
			}
		}
	}
	if out.Remote != nil {
		applyRemoteFieldErrors(res, out.Remote)
	}

	return out
}

// remoteValidate never fails: transport and format errors degrade into
// an error response so the caller can still present something.
func (e *Enricher) remoteValidate(ctx context.Context, rawPayload string) *validateapi.Response {
	resp, err := e.validator.Validate(ctx, e.apiURL, rawPayload)
	if err != nil {
		e.logger.DebugContext(ctx, "remote validation failed", "error", err)
		message := err.Error()
		if errors.Is(err, validateapi.ErrMalformedResponse) {
			message = validateapi.MalformedResponseKey
		}
		return &validateapi.Response{Status: validateapi.StatusError, Message: message}
	}
	return resp
}

func (e *Enricher) checkVat(ctx context.Context, country, tin string) *euvat.CheckVatResult {
	res, err := e.vat.CheckVat(ctx, country, tin)
	if err != nil {
		e.logger.DebugContext(ctx, "vies lookup failed", "country", country, "error", err)
		return nil
	}
	return res
}

func (e *Enricher) lookupCertificate(ctx context.Context, number string) *certreg.Response {
	resp, err := e.registry.Lookup(ctx, number)
	if err != nil {
		e.logger.DebugContext(ctx, "certificate lookup failed", "number", number, "error", err)
	}
	return resp
}

// issuerLookup gates the issuer VIES check on field A.
func (e *Enricher) issuerLookup(res *fiscalqr.Result) (string, bool) {
	field := res.Field(fiscalqr.FieldA)
	if field == nil || !field.Valid {
		return "", false
	}
	if viesSkipRx.MatchString(field.Value) {
		return "", false
	}
	return field.Value, true
}

// buyerLookup gates the buyer VIES check on fields B and C.
func (e *Enricher) buyerLookup(res *fiscalqr.Result) (country, tin string, ok bool) {
	fieldB := res.Field(fiscalqr.FieldB)
	fieldC := res.Field(fiscalqr.FieldC)
	if fieldB == nil || !fieldB.Valid || fieldC == nil || !fieldC.Valid {
		return "", "", false
	}
	country = fieldC.Value
	if _, eu := euCountries[country]; !eu {
		return "", "", false
	}
	if country == "PT" && viesSkipRx.MatchString(fieldB.Value) {
		return "", "", false
	}
	return country, fieldB.Value, true
}

// certificateLookup gates the registry check on field R.
func (e *Enricher) certificateLookup(res *fiscalqr.Result) (string, bool) {
	field := res.Field(fiscalqr.FieldR)
	if field == nil || !field.Valid {
		return "", false
	}
	return field.Value, true
}

// applyRemoteFieldErrors merges per-field findings of the remote service
// into the result. Known fields are downgraded in place; findings for
// fields absent from the payload synthesize invalid entries. Unknown
// field keys are dropped.
func applyRemoteFieldErrors(res *fiscalqr.Result, remote *validateapi.Response) {
	for _, fe := range remote.FieldsError {
		id, ok := fiscalqr.ParseFieldID(fe.Field)
		if !ok {
			continue
		}
		if field := res.Field(id); field != nil {
			field.Valid = false
			field.Errors = append(field.Errors, fe.Value)
			continue
		}
		res.Fields[id] = &fiscalqr.ParsedField{
			ID:     id,
			Valid:  false,
			Errors: []string{fe.Value},
		}
	}
}
