package views

import (
	"context"
	"io"

	"github.com/MGabeD/chrysus/internal/models"
)

// BackendInterface is the slice of the analysis backend the view layer
// depends on. *backend.Client satisfies it; tests substitute fakes.
type BackendInterface interface {
	ListHolders(ctx context.Context) ([]models.AccountHolder, error)
	BaseInsights(ctx context.Context, holder string) (*models.BaseInsights, error)
	TransactionTable(ctx context.Context, holder string) ([]models.Transaction, error)
	DescriptiveTables(ctx context.Context, holder string) ([]models.DescriptiveTable, error)
	Recommendation(ctx context.Context, holder string) (*models.Recommendation, error)
	UploadPDF(ctx context.Context, filename string, file io.Reader) error
}
