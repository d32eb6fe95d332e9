package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/MGabeD/chrysus/internal/backend"
	"github.com/MGabeD/chrysus/internal/models"
	"github.com/MGabeD/chrysus/internal/session"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// stubBackend serves fixed payloads so handler tests exercise the full
// store -> manager -> fetcher path without a network.
type stubBackend struct {
	holders        []string
	insights       *models.BaseInsights
	transactions   []models.Transaction
	tables         []models.DescriptiveTable
	recommendation *models.Recommendation
	fetchErr       error
	uploadErr      error

	// When set, TransactionTable blocks until the channel is closed.
	blockFetch chan struct{}
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		holders: []string{"alice", "bob"},
		insights: &models.BaseInsights{
			Tags: []models.CategoryStat{
				{Tag: "INCOME", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(3000)}},
				{Tag: "GROCERIES", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(-400)}},
				{Tag: "DINING", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(-100)}},
			},
		},
		transactions: []models.Transaction{
			{Date: "2024-01-05 09:00:00", Description: "Coffee Shop", Amount: decimal.NewFromFloat(-4.5), Tag: "DINING"},
			{Date: "2024-01-05 12:00:00", Description: "Salary", Amount: decimal.NewFromInt(3000), Tag: "INCOME"},
		},
		tables: []models.DescriptiveTable{
			{Title: "Overview", Data: []models.TableRow{{"k": "v"}}},
			{Title: "Empty", Data: []models.TableRow{}},
		},
		recommendation: &models.Recommendation{Recommendation: "Accept", Reasoning: "solid income"},
	}
}

func (b *stubBackend) ListHolders(context.Context) ([]models.AccountHolder, error) {
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return models.RosterFromNames(b.holders), nil
}

func (b *stubBackend) BaseInsights(context.Context, string) (*models.BaseInsights, error) {
	return b.insights, b.fetchErr
}

func (b *stubBackend) TransactionTable(context.Context, string) ([]models.Transaction, error) {
	if b.blockFetch != nil {
		<-b.blockFetch
	}
	return b.transactions, b.fetchErr
}

func (b *stubBackend) DescriptiveTables(context.Context, string) ([]models.DescriptiveTable, error) {
	return b.tables, b.fetchErr
}

func (b *stubBackend) Recommendation(context.Context, string) (*models.Recommendation, error) {
	return b.recommendation, b.fetchErr
}

func (b *stubBackend) UploadPDF(context.Context, string, io.Reader) error {
	return b.uploadErr
}

var errBackendDown = &backend.TransportError{Err: errors.New("backend down")}

// newTestContext builds an echo context with an optional JSON body.
func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newSessionFixture(backend views.BackendInterface) (*session.Store, *views.Manager) {
	store := session.NewStore()
	manager := views.NewManager(context.Background(), store, backend, nil)
	return store, manager
}
