package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/sebastiantruijens/moviescores/internal/logging"
	"github.com/sebastiantruijens/moviescores/internal/movies"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// Lookup is the pair of queries the interactive session needs.
type Lookup interface {
	Search(ctx context.Context, term string) ([]movies.Candidate, error)
	FetchDetail(ctx context.Context, title string) (*movies.Selection, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger records one debug line per request.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "omdb")
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchHit struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// envelope covers every response shape the endpoint produces.
type envelope struct {
	Response string       `json:"Response"`
	Error    string       `json:"Error"`
	Search   *[]searchHit `json:"Search"`
	Title    string       `json:"Title"`
	Year     string       `json:"Year"`
	Director string       `json:"Director"`
	Poster   string       `json:"Poster"`
	IMDbID   string       `json:"imdbID"`
}

// Search returns the candidates matching term.
func (c *Client) Search(ctx context.Context, term string) ([]movies.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyQuery
	}
	payload, err := c.get(ctx, "s", term)
	if err != nil {
		return nil, err
	}
	if payload.Search == nil {
		return nil, fmt.Errorf("%w: search response has no result list", ErrMalformed)
	}

	hits := *payload.Search
	candidates := make([]movies.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, movies.Candidate{
			Poster: hit.Poster,
			Title:  hit.Title,
			Year:   hit.Year,
			IMDbID: hit.IMDbID,
			Type:   hit.Type,
		})
	}
	return candidates, nil
}

// FetchDetail returns the full record for an exact title. The result is
// normalized; a record without a title is reported as ErrMalformed.
func (c *Client) FetchDetail(ctx context.Context, title string) (*movies.Selection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyQuery
	}
	payload, err := c.get(ctx, "t", title)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("%w: detail response has no title", ErrMalformed)
	}
	if strings.TrimSpace(payload.IMDbID) == "" {
		return nil, fmt.Errorf("%w: detail response has no imdbID", ErrMalformed)
	}

	selection := movies.Selection{
		Poster:   payload.Poster,
		Title:    payload.Title,
		Year:     payload.Year,
		Director: payload.Director,
		IMDbID:   payload.IMDbID,
	}.Normalize()
	return &selection, nil
}

func (c *Client) get(ctx context.Context, mode, query string) (*envelope, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params := endpoint.Query()
	params.Set("apikey", c.apiKey)
	params.Set(mode, query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	c.logger.Debug("omdb request",
		logging.String("mode", mode),
		logging.String("query", query),
		logging.Duration("latency", latency),
		logging.Bool("transport_ok", err == nil))
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var payload envelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.EqualFold(payload.Response, "False") {
		return nil, &APIError{Message: payload.Error}
	}
	if payload.Search == nil && strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("%w: neither a result list nor a title", ErrMalformed)
	}
	return &payload, nil
}
