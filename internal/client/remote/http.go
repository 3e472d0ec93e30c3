package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"draftpad/internal/client/models"
	"draftpad/internal/common"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements DocumentsAPI and SharedResolver against the remote
// JSON API; wrap it in TemplatesClient for TemplatesAPI. Authentication rides
// on the session cookie held by the client's cookie jar.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout, Jar: jar},
	}, nil
}

// List fetches all remote documents for the current session.
func (c *HTTPClient) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Get fetches one remote document by id.
func (c *HTTPClient) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpsertFolders pushes a folder batch to the remote.
func (c *HTTPClient) UpsertFolders(ctx context.Context, batch []models.Folder) error {
	return c.doJSON(ctx, http.MethodPut, "/api/folders", batch, nil)
}

// Delete removes remote documents by id.
func (c *HTTPClient) Delete(ctx context.Context, ids []string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/documents/delete", ids, nil)
}

// Share announces a sharing token for a document.
func (c *HTTPClient) Share(ctx context.Context, id string, token string) error {
	body := map[string]string{"token": token}
	return c.doJSON(ctx, http.MethodPost, "/api/documents/"+url.PathEscape(id)+"/share", body, nil)
}

// Unshare invalidates a document's sharing token server-side.
func (c *HTTPClient) Unshare(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/documents/"+url.PathEscape(id)+"/unshare", nil, nil)
}

// ListTemplates fetches the public system templates. No session required.
func (c *HTTPClient) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var tpls []models.Template
	if err := c.doJSON(ctx, http.MethodGet, "/api/templates", nil, &tpls); err != nil {
		return nil, err
	}
	for i := range tpls {
		tpls[i].IsSystem = true
	}
	return tpls, nil
}

// Resolve resolves a sharing token to its document. No session required.
func (c *HTTPClient) Resolve(ctx context.Context, token string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/shared/"+url.PathEscape(token), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// doJSON performs one request/response cycle. in (when non-nil) is sent as a
// JSON body, out (when non-nil) receives the decoded response.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, common.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s: status %d", common.ErrRemoteUnavailable, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", common.ErrRemoteUnavailable, err)
	}
	return nil
}

// TemplatesClient adapts HTTPClient to the TemplatesAPI interface. Separate
// named methods keep List on DocumentsAPI and TemplatesAPI from colliding on
// a single receiver.
type TemplatesClient struct {
	*HTTPClient
}

func (c TemplatesClient) List(ctx context.Context) ([]models.Template, error) {
	return c.ListTemplates(ctx)
}
