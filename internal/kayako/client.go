package kayako

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/clbanning/mxj/v2"
)

const (
	apiPath = "/api/index.php"

	// maxErrorBody bounds how much of a failed response is kept on HTTPError.
	maxErrorBody = 512
)

func init() {
	mxj.SetAttrPrefix("@")
}

// Credentials identify the bot to a Kayako installation.
type Credentials struct {
	APIKey    string
	SecretKey string
	BaseURL   string
}

// Client issues signed GET requests against the Kayako REST API.
type Client struct {
	creds  Credentials
	random RandomSource
	http   *http.Client
}

// NewClient builds a client. A zero timeout leaves the transport without one.
func NewClient(creds Credentials, random RandomSource, timeout time.Duration) *Client {
	return &Client{
		creds:  creds,
		random: random,
		http:   &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// BaseURL returns the configured installation URL, verbatim.
func (c *Client) BaseURL() string {
	return c.creds.BaseURL
}

// Call performs a signed GET of endpoint and returns the decoded XML tree.
//
// params are sent as query parameters; the authentication parameters
// e, apikey, salt and signature win on key collision. endpoint travels in the
// "e" query parameter, so it is query-escaped but never path-escaped.
func (c *Client) Call(ctx context.Context, endpoint string, params map[string]string) (mxj.Map, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}

	salt, signature := GenerateSignature(c.creds.SecretKey, c.random)
	query.Set("e", endpoint)
	query.Set("apikey", c.creds.APIKey)
	query.Set("salt", string(salt))
	query.Set("signature", string(signature))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.creds.BaseURL+apiPath, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "text/xml, application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: err}
	}
	tree, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, &TransportError{Op: "decode xml", Err: err}
	}
	return tree, nil
}
