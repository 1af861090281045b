// Package github reads repositories from the GitHub REST API and turns them
// into projects.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/metrics"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

var (
	// ErrNotFound is returned when GitHub answers 404.
	ErrNotFound = errors.New("github: not found")
	// ErrRequestFailed is returned for any other non-2xx answer.
	ErrRequestFailed = errors.New("github: request failed")
	// ErrNetwork wraps transport failures.
	ErrNetwork = errors.New("github: network error")
)

// Owner is the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// Repo is the subset of the repository payload the importer needs.
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Archived        bool      `json:"archived"`
	Topics          []string  `json:"topics"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Owner           Owner     `json:"owner"`
}

// LanguageBytes is one entry of the languages breakdown, in the order GitHub
// returned it.
type LanguageBytes struct {
	Name  string
	Bytes int64
}

// Client talks to the GitHub API without authentication.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client for baseURL. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logger: logger}
}

// SearchUserRepos lists the repositories of username. With an empty query it
// returns the 50 most recently updated ones; otherwise it runs a repository
// search restricted to that user.
func (c *Client) SearchUserRepos(ctx context.Context, username, query string) ([]Repo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		var repos []Repo
		params := url.Values{"sort": {"updated"}, "per_page": {"50"}}
		if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/repos", params, &repos); err != nil {
			return nil, err
		}
		return repos, nil
	}

	var result struct {
		Items []Repo `json:"items"`
	}
	params := url.Values{"q": {"user:" + username + " " + query}}
	if err := c.getJSON(ctx, "/search/repositories", params, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetRepo fetches a single repository.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repo, error) {
	var r Repo
	if err := c.getJSON(ctx, "/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(repo), nil, &r); err != nil {
		return Repo{}, err
	}
	return r, nil
}

// Languages returns the byte count per language. Any failure is logged and
// yields an empty breakdown.
func (c *Client) Languages(ctx context.Context, owner, repo string) []LanguageBytes {
	var out []LanguageBytes
	err := c.get(ctx, "/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(repo)+"/languages", nil, func(body io.Reader) error {
		langs, err := decodeLanguages(body)
		out = langs
		return err
	})
	if err != nil {
		c.logger.Warn("github languages unavailable", slog.String("repo", owner+"/"+repo), slog.String("error", err.Error()))
		return nil
	}
	return out
}

// decodeLanguages reads a JSON object of name -> bytes keeping key order.
func decodeLanguages(r io.Reader) ([]LanguageBytes, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("languages: expected object, got %v", tok)
	}

	var out []LanguageBytes
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("languages: unexpected key %v", tok)
		}
		var n int64
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("languages: %s: %w", name, err)
		}
		out = append(out, LanguageBytes{Name: name, Bytes: n})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	return c.get(ctx, path, params, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(dst); err != nil {
			return fmt.Errorf("%w: invalid response: %v", ErrRequestFailed, err)
		}
		return nil
	})
}

func (c *Client) get(ctx context.Context, path string, params url.Values, decode func(io.Reader) error) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.IntegrationCalls.WithLabelValues("github", outcome).Inc()
	}()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return decode(resp.Body)
}
