// Package source reads markup from files, stdin, and HTTP URLs.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/open-cli-collective/markup-reflow/internal/version"
)

const (
	defaultTimeout = 30 * time.Second

	// Stdin is the input name that selects standard input.
	Stdin = "-"

	// maxErrorBody bounds the response body kept in a StatusError.
	maxErrorBody = 512
)

// Input is a markup document and where it came from.
type Input struct {
	Name    string
	Content string
	// Writable is true for local files that can be rewritten in place.
	Writable bool
}

// StatusError is returned when a URL responds with an error status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client fetches inputs over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new client with the given request timeout.
// A zero timeout uses the default of 30 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "reflow/" + version.Version,
	}
}

// Fetch performs a GET request and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/html, application/xhtml+xml, application/xml, text/xml, */*")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(truncate(string(body), maxErrorBody)),
		}
	}

	return string(body), nil
}

// IsURL reports whether name refers to an http or https resource.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Reader resolves input names to documents.
type Reader struct {
	Client *Client
	Stdin  io.Reader
}

// NewReader creates a reader over os.Stdin using client for URLs.
func NewReader(client *Client) *Reader {
	return &Reader{Client: client, Stdin: os.Stdin}
}

// Read loads the named input: "-" for stdin, an http(s) URL, or a file path.
func (r *Reader) Read(ctx context.Context, name string) (Input, error) {
	switch {
	case name == Stdin:
		data, err := io.ReadAll(r.Stdin)
		if err != nil {
			return Input{}, fmt.Errorf("reading stdin: %w", err)
		}
		return Input{Name: name, Content: string(data)}, nil

	case IsURL(name):
		client := r.Client
		if client == nil {
			client = NewClient(0)
		}
		content, err := client.Fetch(ctx, name)
		if err != nil {
			return Input{}, err
		}
		return Input{Name: name, Content: content}, nil

	default:
		data, err := os.ReadFile(name)
		if err != nil {
			return Input{}, fmt.Errorf("reading file: %w", err)
		}
		return Input{Name: name, Content: string(data), Writable: true}, nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
