package euvat

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Public service endpoints.
const (
	DefaultVATEndpoint = "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"
	DefaultTINEndpoint = "https://ec.europa.eu/taxation_customs/tin/services/checkTinService"
)

var (
	ErrRequestFailed     = errors.New("euvat: request failed")
	ErrMalformedResponse = errors.New("euvat: malformed response")
	ErrUnexpectedStatus  = errors.New("euvat: unexpected http status")
)

// Fault is a SOAP fault returned by the service, e.g. INVALID_INPUT or
// MS_UNAVAILABLE.
type Fault struct {
	Code   string
	Reason string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("euvat: soap fault %s: %s", f.Code, f.Reason)
}

// CheckVatResult is the VIES answer for one VAT number.
type CheckVatResult struct {
	CountryCode string
	VATNumber   string
	RequestDate string
	Valid       bool
	Name        string
	Address     string
}

// CheckTinResult is the checkTinService answer for one TIN.
type CheckTinResult struct {
	ValidSyntax    bool
	ValidStructure bool
}

// Verdict collapses the TIN check into a single boolean, the way the
// decoder treats it: both syntax and structure must hold.
func (r *CheckTinResult) Verdict() bool {
	return r.ValidSyntax && r.ValidStructure
}

// Client calls the EU web services. Zero value is not usable; use New.
type Client struct {
	httpClient  *http.Client
	vatEndpoint string
	tinEndpoint string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, for tests or custom transports.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithVATEndpoint overrides the checkVatService URL.
func WithVATEndpoint(url string) Option {
	return func(c *Client) { c.vatEndpoint = url }
}

// WithTINEndpoint overrides the checkTinService URL.
func WithTINEndpoint(url string) Option {
	return func(c *Client) { c.tinEndpoint = url }
}

// New creates a client against the public endpoints.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		vatEndpoint: DefaultVATEndpoint,
		tinEndpoint: DefaultTINEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckVat asks VIES whether countryCode/vatNumber is a registered VAT
// number.
func (c *Client) CheckVat(ctx context.Context, countryCode, vatNumber string) (*CheckVatResult, error) {
	envelope := buildEnvelope(
		"checkVat", "urn:ec.europa.eu:taxud:vies:services:checkVat:types",
		[2]string{"countryCode", countryCode},
		[2]string{"vatNumber", vatNumber},
	)

	body, err := c.post(ctx, c.vatEndpoint, envelope)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Body struct {
			Response *struct {
				CountryCode string `xml:"countryCode"`
				VATNumber   string `xml:"vatNumber"`
				RequestDate string `xml:"requestDate"`
				Valid       bool   `xml:"valid"`
				Name        string `xml:"name"`
				Address     string `xml:"address"`
			} `xml:"checkVatResponse"`
			Fault *soapFault `xml:"Fault"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if decoded.Body.Fault != nil {
		return nil, decoded.Body.Fault.toFault()
	}
	if decoded.Body.Response == nil {
		return nil, ErrMalformedResponse
	}

	r := decoded.Body.Response
	return &CheckVatResult{
		CountryCode: r.CountryCode,
		VATNumber:   r.VATNumber,
		RequestDate: r.RequestDate,
		Valid:       r.Valid,
		Name:        r.Name,
		Address:     r.Address,
	}, nil
}

// CheckTin asks the checkTinService whether countryCode/tinNumber has a
// valid national syntax and structure.
func (c *Client) CheckTin(ctx context.Context, countryCode, tinNumber string) (*CheckTinResult, error) {
	envelope := buildEnvelope(
		"checkTin", "urn:ec.europa.eu:taxud:tin:services:checkTin:types",
		[2]string{"countryCode", countryCode},
		[2]string{"tinNumber", tinNumber},
	)

	body, err := c.post(ctx, c.tinEndpoint, envelope)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Body struct {
			Response *struct {
				ValidSyntax    bool `xml:"validSyntax"`
				ValidStructure bool `xml:"validStructure"`
			} `xml:"checkTinResponse"`
			Fault *soapFault `xml:"Fault"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if decoded.Body.Fault != nil {
		return nil, decoded.Body.Fault.toFault()
	}
	if decoded.Body.Response == nil {
		return nil, ErrMalformedResponse
	}

	return &CheckTinResult{
		ValidSyntax:    decoded.Body.Response.ValidSyntax,
		ValidStructure: decoded.Body.Response.ValidStructure,
	}, nil
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	Reason string `xml:"faultstring"`
}

func (f *soapFault) toFault() *Fault {
	return &Fault{Code: f.Code, Reason: f.Reason}
}

// buildEnvelope writes the request envelope for one operation. Values
// are XML-escaped, the structure is fixed.
func buildEnvelope(operation, namespace string, params ...[2]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">`)
	buf.WriteString(`<soapenv:Header/><soapenv:Body>`)
	fmt.Fprintf(&buf, `<%s xmlns=%q>`, operation, namespace)
	for _, p := range params {
		buf.WriteString("<" + p[0] + ">")
		_ = xml.EscapeText(&buf, []byte(p[1]))
		buf.WriteString("</" + p[0] + ">")
	}
	fmt.Fprintf(&buf, `</%s>`, operation)
	buf.WriteString(`</soapenv:Body></soapenv:Envelope>`)
	return buf.Bytes()
}

func (c *Client) post(ctx context.Context, url string, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(envelope))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	// SOAP faults commonly arrive with a 500; decode those instead of
	// failing on the status code.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return body, nil
}
