// Package githubsync pushes and pulls the checklist document to a file in
// a GitHub repository through the contents API. The client only moves
// opaque JSON blobs; validation and import stay with the caller, so a
// failed sync can never mutate local state.
package githubsync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"auditkit/domain/core"
	"auditkit/ports"
)

const apiVersion = "2022-11-28"

// Client talks to the GitHub contents API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a contents-API client. baseURL is overridable for
// tests and GitHub Enterprise hosts.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ ports.RemoteSyncPort = (*Client)(nil)

// Pull fetches the remote file and returns its decoded content. The
// contents API serves base64; any other encoding is rejected.
func (c *Client) Pull(ctx context.Context, loc ports.RemoteLocation) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodGet, c.contentsURL(loc), loc.Token, nil)
	if err != nil {
		return nil, core.NewSyncError("pull", err)
	}
	if status != http.StatusOK {
		return nil, core.NewSyncError("pull", apiError(status, body))
	}

	if gjson.GetBytes(body, "encoding").String() != "base64" {
		return nil, core.ErrEncodingMismatch
	}
	content := gjson.GetBytes(body, "content").String()
	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(content))
	if err != nil {
		return nil, core.NewSyncError("pull", fmt.Errorf("failed to decode file content: %w", err))
	}
	return decoded, nil
}

// Push uploads the payload, replacing any existing remote version. The
// existing file's SHA is fetched first; a 404 there is fine (fresh file),
// other lookup failures are logged and the create is attempted anyway,
// matching how an interrupted first push is recovered.
func (c *Client) Push(ctx context.Context, loc ports.RemoteLocation, payload []byte) error {
	sha := ""
	body, status, err := c.do(ctx, http.MethodGet, c.contentsURL(loc), loc.Token, nil)
	switch {
	case err != nil:
		log.Printf("[githubsync] could not look up existing file SHA, attempting create: %v", err)
	case status == http.StatusOK:
		sha = gjson.GetBytes(body, "sha").String()
	case status != http.StatusNotFound:
		log.Printf("[githubsync] SHA lookup returned %d, attempting create: %v", status, apiError(status, body))
	}

	request := map[string]string{
		"message": fmt.Sprintf("Sync: audit checklist update %s", time.Now().UTC().Format(time.RFC3339)),
		"content": base64.StdEncoding.EncodeToString(payload),
	}
	if sha != "" {
		request["sha"] = sha
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return core.NewSyncError("push", err)
	}

	body, status, err = c.do(ctx, http.MethodPut, c.contentsURL(loc), loc.Token, encoded)
	if err != nil {
		return core.NewSyncError("push", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return core.NewSyncError("push", apiError(status, body))
	}
	return nil
}

func (c *Client) contentsURL(loc ports.RemoteLocation) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, loc.Owner, loc.Repo, loc.Path)
}

func (c *Client) do(ctx context.Context, method, url, token string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// apiError surfaces GitHub's own message when the error body carries one.
func apiError(status int, body []byte) error {
	if message := gjson.GetBytes(body, "message").String(); message != "" {
		return fmt.Errorf("GitHub API error (%d): %s", status, message)
	}
	return fmt.Errorf("GitHub API error (%d)", status)
}

func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
