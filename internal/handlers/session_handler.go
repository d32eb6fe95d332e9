package handlers

import (
	"net/http"

	"github.com/MGabeD/chrysus/internal/errors"
	"github.com/MGabeD/chrysus/internal/models"
	"github.com/MGabeD/chrysus/internal/session"
	"github.com/MGabeD/chrysus/internal/validation"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the session state store over the facade:
// reading the current selection and mutating holder, mode, and roster.
type SessionHandler struct {
	store   *session.Store
	manager *views.Manager
}

func NewSessionHandler(store *session.Store, manager *views.Manager) *SessionHandler {
	return &SessionHandler{store: store, manager: manager}
}

// SelectHolderRequest is the body for selecting an account holder.
type SelectHolderRequest struct {
	Name string `json:"name" validate:"required,holder_name"`
}

// SelectModeRequest is the body for switching the view mode.
type SelectModeRequest struct {
	Mode string `json:"mode" validate:"required,view_mode"`
}

// sessionState is the session snapshot the renderer polls.
type sessionState struct {
	Holder *models.AccountHolder  `json:"holder"`
	Mode   models.ViewMode        `json:"mode"`
	Roster []models.AccountHolder `json:"roster"`
}

// GetSession returns the active holder, active mode, and known roster.
func (h *SessionHandler) GetSession(c echo.Context) error {
	state := sessionState{
		Mode:   h.store.Mode(),
		Roster: h.store.Roster(),
	}
	if holder, ok := h.store.Holder(); ok {
		state.Holder = &holder
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: state})
}

// SelectHolder sets the active account holder. Names outside the known
// roster are accepted; their views fetch normally and surface whatever
// the backend answers.
func (h *SessionHandler) SelectHolder(c echo.Context) error {
	var req SelectHolderRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("invalid request body"))
	}
	if err := validation.GetValidator().GetValidate().Struct(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	h.store.SelectHolder(models.AccountHolder{Name: req.Name})
	return h.GetSession(c)
}

// ClearHolder drops the active selection; every view returns to its
// explicit "nothing selected" state.
func (h *SessionHandler) ClearHolder(c echo.Context) error {
	h.store.ClearHolder()
	return h.GetSession(c)
}

// SelectMode switches the active view mode. The newly active view
// fetches if a holder is selected; other views are untouched.
func (h *SessionHandler) SelectMode(c echo.Context) error {
	var req SelectModeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("invalid request body"))
	}
	if err := validation.GetValidator().GetValidate().Struct(&req); err != nil {
		return SendError(c, errors.ValidationInvalidViewMode, errors.WithDetails(err.Error()))
	}

	mode, err := models.ParseViewMode(req.Mode)
	if err != nil {
		return SendError(c, errors.ValidationInvalidViewMode)
	}
	if err := h.store.SelectMode(mode); err != nil {
		return SendError(c, errors.ValidationInvalidViewMode)
	}
	return h.GetSession(c)
}

// RefreshRoster refetches the holder roster from the backend. A backend
// failure degrades to an empty roster rather than an error response, so
// the dashboard stays usable.
func (h *SessionHandler) RefreshRoster(c echo.Context) error {
	h.manager.RefreshRoster(c.Request().Context())
	return h.GetSession(c)
}
