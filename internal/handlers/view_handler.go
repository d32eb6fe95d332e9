package handlers

import (
	"net/http"

	"github.com/MGabeD/chrysus/internal/aggregate"
	"github.com/MGabeD/chrysus/internal/errors"
	"github.com/MGabeD/chrysus/internal/models"
	"github.com/MGabeD/chrysus/internal/validation"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
)

// ViewHandler serves the four view snapshots, with the aggregation
// engine applied on the way out. Responses always carry the view's
// lifecycle status so the renderer can distinguish "nothing selected",
// "loading", "failed", and "loaded but empty".
type ViewHandler struct {
	manager       *views.Manager
	topCategories int
}

func NewViewHandler(manager *views.Manager, topCategories int) *ViewHandler {
	if topCategories <= 0 {
		topCategories = aggregate.DefaultTopCategories
	}
	return &ViewHandler{manager: manager, topCategories: topCategories}
}

// viewEnvelope wraps every view payload with its fetch lifecycle state.
// Failed views carry both the display text and the machine-readable
// code, so the renderer can branch on the failure class.
type viewEnvelope struct {
	Status    views.Status `json:"status"`
	Holder    string       `json:"holder,omitempty"`
	Error     string       `json:"error,omitempty"`
	ErrorCode string       `json:"error_code,omitempty"`
	Data      any          `json:"data,omitempty"`
}

func envelope[T any](snapshot views.Snapshot[T], data any) viewEnvelope {
	env := viewEnvelope{
		Status:    snapshot.Status,
		Holder:    snapshot.Holder.Name,
		Error:     snapshot.Err,
		ErrorCode: string(snapshot.ErrCode),
	}
	if snapshot.Status == views.StatusReady {
		env.Data = data
	}
	return env
}

// aggregateData is the ready payload of the aggregate-stats view.
type aggregateData struct {
	Insights      *models.BaseInsights   `json:"insights"`
	Summary       models.InsightSummary  `json:"summary"`
	TopCategories []models.CategoryShare `json:"top_categories"`
}

// GetAggregate returns the precomputed stats plus the derived summary
// totals and the top-N expense distribution. The optional "top" query
// parameter overrides the configured category limit.
func (h *ViewHandler) GetAggregate(c echo.Context) error {
	var params struct {
		Top *int `query:"top" validate:"omitempty,top_n"`
	}
	if err := c.Bind(&params); err != nil {
		return SendError(c, errors.ValidationInvalidTopN)
	}
	if err := validation.GetValidator().GetValidate().Struct(&params); err != nil {
		return SendError(c, errors.ValidationInvalidTopN)
	}

	n := h.topCategories
	if params.Top != nil {
		n = *params.Top
	}

	snapshot := h.manager.Aggregate.Snapshot()

	var data any
	if snapshot.Status == views.StatusReady && snapshot.Data != nil {
		data = aggregateData{
			Insights:      snapshot.Data,
			Summary:       snapshot.Data.Summary(),
			TopCategories: aggregate.TopExpenseCategories(snapshot.Data.Tags, n),
		}
	}
	return c.JSON(http.StatusOK, envelope(snapshot, data))
}

// transactionsData is the ready payload of the transaction-ledger view.
// Transactions are filtered for display only; the underlying fetched
// data is never mutated. DailyFlow is always derived from the full,
// unfiltered ledger.
type transactionsData struct {
	Transactions []models.Transaction `json:"transactions"`
	Matched      int                  `json:"matched"`
	Total        int                  `json:"total"`
	DailyFlow    []models.DailyFlow   `json:"daily_flow"`
}

// GetTransactions returns the ledger with optional free-text filtering
// via the "q" query parameter, plus per-day flow totals for the chart.
func (h *ViewHandler) GetTransactions(c echo.Context) error {
	query := c.QueryParam("q")
	snapshot := h.manager.Transactions.Snapshot()

	var data any
	if snapshot.Status == views.StatusReady {
		filtered := aggregate.FilterTransactions(snapshot.Data, query)
		data = transactionsData{
			Transactions: filtered,
			Matched:      len(filtered),
			Total:        len(snapshot.Data),
			DailyFlow:    aggregate.GroupByDay(snapshot.Data),
		}
	}
	return c.JSON(http.StatusOK, envelope(snapshot, data))
}

// tableData is one descriptive table with its derived column headers.
type tableData struct {
	Title   string            `json:"title"`
	Headers []string          `json:"headers"`
	Rows    []models.TableRow `json:"rows"`
}

// GetTables returns the descriptive tables with column headers derived
// from each table's first row. Empty tables are skipped.
func (h *ViewHandler) GetTables(c echo.Context) error {
	snapshot := h.manager.Tables.Snapshot()

	var data any
	if snapshot.Status == views.StatusReady {
		tables := make([]tableData, 0, len(snapshot.Data))
		for _, table := range snapshot.Data {
			if table.IsEmpty() {
				continue
			}
			tables = append(tables, tableData{
				Title:   table.Title,
				Headers: table.Headers(),
				Rows:    table.Data,
			})
		}
		data = tables
	}
	return c.JSON(http.StatusOK, envelope(snapshot, data))
}

// recommendationData is the ready payload of the recommendation view.
type recommendationData struct {
	Recommendation *models.Recommendation `json:"recommendation"`
	Verdict        models.Verdict         `json:"verdict"`
}

// GetRecommendations returns the loan recommendation with its derived
// verdict bucket.
func (h *ViewHandler) GetRecommendations(c echo.Context) error {
	snapshot := h.manager.Recommendations.Snapshot()

	var data any
	if snapshot.Status == views.StatusReady && snapshot.Data != nil {
		data = recommendationData{
			Recommendation: snapshot.Data,
			Verdict:        snapshot.Data.Verdict(),
		}
	}
	return c.JSON(http.StatusOK, envelope(snapshot, data))
}

// Retry re-issues the identical fetch for the view named in the path.
// There is no automatic retry anywhere; this is the manual recovery
// action the renderer offers on a failed view.
func (h *ViewHandler) Retry(c echo.Context) error {
	mode, err := models.ParseViewMode(c.Param("mode"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidViewMode)
	}

	switch err := h.manager.Retry(mode); err {
	case nil:
	case views.ErrNoHolder:
		return SendError(c, errors.HolderNotSelected)
	case views.ErrFetchInFlight:
		return SendError(c, errors.FetchInFlight)
	default:
		return SendError(c, errors.ValidationInvalidViewMode)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "retry started"})
}
