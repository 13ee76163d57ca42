package certreg

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultEndpoint is the registry page of certified billing programs.
const DefaultEndpoint = "https://www.portaldasfinancas.gov.pt/pt/consultaProgCertificadosM24.action"

// tableID identifies the certificate table on the registry page.
const tableID = "m24Table"

var ErrRequestFailed = errors.New("certreg: request failed")

// Status of a registry lookup.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusConnectionError
	StatusUnknown
)

// Certificate is one row of the registry table.
type Certificate struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	TIN     string `json:"tin"`
	Number  string `json:"number"`
	Type    string `json:"type"`
	Date    string `json:"date"`
}

// Response is the outcome of one lookup. Certificate is non-nil only
// when Status is StatusOK.
type Response struct {
	Status      Status
	Certificate *Certificate
}

// Client fetches and scans the registry page. Zero value is not usable;
// use New.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithEndpoint overrides the registry page URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithUserAgent sets the User-Agent header sent to the registry.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client against the public registry page.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   DefaultEndpoint,
		userAgent:  "atqr",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup searches the registry for a certificate number. Leading zeros
// in number are ignored, matching how the registry lists them. Lookup
// never returns an error for a missing certificate; the Response status
// carries the outcome.
func (c *Client) Lookup(ctx context.Context, number string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return &Response{Status: StatusUnknown}, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Response{Status: StatusConnectionError}, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Response{Status: StatusConnectionError}, nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return &Response{Status: StatusUnknown}, nil
	}

	table := findByID(doc, tableID)
	if table == nil {
		// No table on the page usually means an error or maintenance
		// page came back instead of the registry.
		return &Response{Status: StatusConnectionError}, nil
	}

	want := strings.TrimLeft(number, "0")
	for _, row := range tableRows(table) {
		cells := cellTexts(row)
		// Layout: index, name, company, TIN, number, type, date.
		if len(cells) < 7 || cells[4] != want {
			continue
		}
		return &Response{
			Status: StatusOK,
			Certificate: &Certificate{
				Name:    cells[1],
				Company: cells[2],
				TIN:     cells[3],
				Number:  cells[4],
				Type:    cells[5],
				Date:    cells[6],
			},
		}, nil
	}

	return &Response{Status: StatusNotFound}, nil
}

// findByID walks the parsed document for the element with the given id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// tableRows collects the tr elements under a table's tbody (or the
// table itself when the parser did not synthesize a tbody).
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(table)
	return rows
}

// cellTexts returns the trimmed text of each td/th cell of a row.
func cellTexts(row *html.Node) []string {
	var cells []string
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || (child.Data != "td" && child.Data != "th") {
			continue
		}
		cells = append(cells, strings.TrimSpace(nodeText(child)))
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
