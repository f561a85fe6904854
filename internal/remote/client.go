package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inovacc/bookstore/internal/model"
)

const maxErrorBody = 512

// Client talks to a Firebase-Realtime-Database compatible collection.
// It keeps no state between calls.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	logger     *slog.Logger
}

// Options configures the client
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New creates a client for the collection at collectionURL, e.g.
// https://example.firebasedatabase.app/books. A trailing slash or ".json"
// suffix is ignored.
func New(collectionURL string, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base, err := parseCollectionURL(collectionURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	logger.Debug("creating collection client", slog.String("url", base.String()))

	return &Client{
		httpClient: httpClient,
		base:       base,
		logger:     logger,
	}, nil
}

func parseCollectionURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("collection URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid collection URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid collection URL %q: scheme must be http or https", raw)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid collection URL %q: missing host", raw)
	}

	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), ".json")
	u.RawPath = ""

	if u.Path == "" {
		return nil, fmt.Errorf("invalid collection URL %q: missing collection path", raw)
	}

	return u, nil
}

// URL returns the normalized collection URL.
func (c *Client) URL() string {
	return c.base.String()
}

// collectionEndpoint returns <collection>.json
func (c *Client) collectionEndpoint() string {
	u := *c.base
	u.Path += ".json"

	return u.String()
}

// documentEndpoint returns <collection>/<id>.json with the id escaped
func (c *Client) documentEndpoint(id string) string {
	u := *c.base
	u.RawPath = u.EscapedPath() + "/" + url.PathEscape(id) + ".json"
	u.Path += "/" + id + ".json"

	return u.String()
}

// List fetches the whole collection. The order of the result is unspecified.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	endpoint := c.collectionEndpoint()

	body, err := c.do(ctx, OpList, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeCollection(body)
	if err != nil {
		return nil, &NetworkError{Op: OpList, URL: endpoint, Err: err}
	}

	c.logger.Debug("listed collection", slog.Int("records", len(records)))

	return records, nil
}

// Create stores draft as a new document. The store assigns the id; callers
// observe it by listing again.
func (c *Client) Create(ctx context.Context, draft model.Draft) error {
	endpoint := c.collectionEndpoint()

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	body, err := c.do(ctx, OpCreate, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}

	var created struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(body, &created); err == nil && created.Name != "" {
		c.logger.Debug("created document", slog.String("id", created.Name))
	}

	return nil
}

// Delete removes the document named id. Whether a missing id is an error is
// up to the store.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	_, err := c.do(ctx, OpDelete, http.MethodDelete, c.documentEndpoint(id), nil)
	if err != nil {
		return err
	}

	c.logger.Debug("deleted document", slog.String("id", id))

	return nil
}

// do performs one request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, op Op, method, endpoint string, payload []byte) ([]byte, error) {
	c.logger.Debug("making store request",
		slog.String("method", method),
		slog.String("url", endpoint),
	)

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, &RemoteRejection{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return body, nil
}

// decodeCollection expands the wire shape into records. The store sends
// null for an empty collection, an object keyed by id otherwise, and an
// array when every key is a small integer.
func decodeCollection(body []byte) ([]model.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []model.Record{}, nil
	}

	documents := make(map[string]json.RawMessage)

	switch body[0] {
	case '{':
		if err := json.Unmarshal(body, &documents); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}

		for i, doc := range list {
			documents[strconv.Itoa(i)] = doc
		}
	default:
		return nil, fmt.Errorf("unexpected collection payload: %.40s", body)
	}

	records := make([]model.Record, 0, len(documents))

	for id, raw := range documents {
		if isNull(raw) {
			continue
		}

		record, err := decodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", id, err)
		}

		record.ID = id
		records = append(records, record)
	}

	return records, nil
}

func decodeDocument(raw json.RawMessage) (model.Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Record{}, fmt.Errorf("failed to decode document: %w", err)
	}

	return model.Record{
		Title:  scalarText(fields["title"]),
		Author: scalarText(fields["author"]),
		Year:   scalarText(fields["year"]),
		ISBN:   scalarText(fields["isbn"]),
		Price:  scalarText(fields["price"]),
	}, nil
}

// scalarText returns a string value as is and any other JSON value as its
// literal text. Missing and null values are empty.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(bytes.TrimSpace(raw))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
