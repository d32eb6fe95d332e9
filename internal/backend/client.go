// Package backend is the read-only HTTP client for the remote analysis
// service. The service owns PDF parsing, statistics, and recommendation
// logic; this client only moves its precomputed payloads.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/MGabeD/chrysus/internal/config"
	"github.com/MGabeD/chrysus/internal/models"
)

// DefaultTimeout bounds every backend call when the config does not
// override it. The contract defines no server-side timeout.
const DefaultTimeout = 30 * time.Second

// Client talks to the Chrysus analysis backend. All GET endpoints are
// idempotent and side-effect free; UploadPDF is the only mutating call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BackendBase(),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListHolders fetches the roster of known account holders.
func (c *Client) ListHolders(ctx context.Context) ([]models.AccountHolder, error) {
	var payload struct {
		Users []string `json:"users"`
	}
	if err := c.getJSON(ctx, "users", &payload); err != nil {
		return nil, err
	}
	return models.RosterFromNames(payload.Users), nil
}

// BaseInsights fetches the precomputed aggregate statistics for a holder.
func (c *Client) BaseInsights(ctx context.Context, holder string) (*models.BaseInsights, error) {
	var insights models.BaseInsights
	if err := c.getJSON(ctx, holderPath(holder, "base_insights"), &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}

// TransactionTable fetches the raw transaction ledger for a holder.
// Backend delivery order is preserved.
func (c *Client) TransactionTable(ctx context.Context, holder string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.getJSON(ctx, holderPath(holder, "transaction_table"), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// DescriptiveTables fetches the loosely typed descriptive tables for a
// holder.
func (c *Client) DescriptiveTables(ctx context.Context, holder string) ([]models.DescriptiveTable, error) {
	var tables []models.DescriptiveTable
	if err := c.getJSON(ctx, holderPath(holder, "descriptive_tables"), &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Recommendation fetches the loan recommendation for a holder.
func (c *Client) Recommendation(ctx context.Context, holder string) (*models.Recommendation, error) {
	var recommendation models.Recommendation
	if err := c.getJSON(ctx, holderPath(holder, "recommendations"), &recommendation); err != nil {
		return nil, err
	}
	return &recommendation, nil
}

// UploadPDF posts a source statement as multipart form data under the
// "file" field. Its only observable effect on this client is that a
// later ListHolders call may include a new holder name.
func (c *Client) UploadPDF(ctx context.Context, filename string, file io.Reader) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_pdf/", body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusErrorFromResponse(resp)
	}

	slog.Info("statement uploaded", "filename", filename)
	return nil
}

// getJSON performs one GET against the backend and decodes the body
// into out. Transport, status, and decode failures come back as the
// distinct error types the view layer classifies on.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func holderPath(holder, endpoint string) string {
	return "user/" + url.PathEscape(holder) + "/" + endpoint
}

// statusErrorFromResponse drains a non-2xx response, keeping the
// structured detail message when the backend sent one.
func statusErrorFromResponse(resp *http.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return statusErr
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		statusErr.Detail = detail.Detail
	}
	return statusErr
}
