package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/middleware"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/wizard"
)

// Handler provides HTTP handlers for guided costing session routes.
type Handler struct {
	costingService service.CostingService
}

// NewHandler creates a new Handler instance.
func NewHandler(costingService service.CostingService) *Handler {
	return &Handler{
		costingService: costingService,
	}
}

// auditLog writes an audit entry when the logging service is wired into the
// request context.
func auditLog(c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, actionType, message, fields)
		}
	}
}

// costingError translates costing and wizard errors into HTTP responses.
// Gate failures are 422: the session is unchanged and the operator corrects
// the input and retries. Ended or mis-sequenced sessions are 409.
func costingError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeySessionNotFound, err)
	case errors.Is(err, wizard.ErrUnknownIngredient):
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
	case errors.Is(err, service.ErrTooManySessions):
		builder.Error(http.StatusTooManyRequests, i18n.ErrKeyTooManySessions, err)
	case errors.Is(err, wizard.ErrSessionEnded):
		builder.Error(http.StatusConflict, i18n.ErrKeySessionEnded, err)
	case errors.Is(err, wizard.ErrFinalizeState):
		builder.Error(http.StatusConflict, i18n.ErrKeyConflict, err)
	case errors.Is(err, wizard.ErrNotAllCosted):
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyNotAllCosted, err)
	case errors.Is(err, costing.ErrZeroPurchaseQuantity):
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyZeroPurchaseQuantity, err)
	case errors.Is(err, wizard.ErrIncompleteForm),
		errors.Is(err, wizard.ErrAlreadyCosted),
		errors.Is(err, wizard.ErrInvalidState):
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyIncompleteStep, err)
	case errors.Is(err, wizard.ErrUnknownAction):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// StartSession handles POST /api/costing/sessions requests.
//
// @Summary      Start a costing session
// @Description  Opens a new guided costing session for a product. The initial ingredient list is optional; names can be added interactively with steps.
// @Tags         Costing
// @Accept       json
// @Produce      json
// @Param        request body dto.StartSessionRequest true "Product to cost"
// @Success      201 {object} dto.SuccessResponse "Session created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many open sessions"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/costing/sessions [post]
func (h *Handler) StartSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.StartSessionRequest](c)
	if err != nil {
		if validationErr, ok := err.(*dto.ValidationError); ok {
			builder.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	session, err := h.costingService.StartSession(c.Request.Context(), req.ProductName, req.Ingredients)
	if err != nil {
		costingError(c, err)
		return
	}

	auditLog(c, "start_session", "Costing session started", map[string]interface{}{
		"session_id": session.ID,
		"product":    session.ProductName,
	})

	builder.SuccessCreated(session)
}

// GetSession handles GET /api/costing/sessions/:id requests.
//
// @Summary      Get a costing session
// @Description  Returns the current state of an open costing session, including the ingredient list, costed entries, and any warnings.
// @Tags         Costing
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse "Session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Security     BearerAuth
// @Router       /api/costing/sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.costingService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		costingError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(session)
}

// Step handles POST /api/costing/sessions/:id/steps requests.
//
// @Summary      Apply a wizard step
// @Description  Applies one workflow action to an open session: editing the ingredient list, selecting an ingredient, filling costing forms, finishing an ingredient, calculating, accepting, or rejecting. On a validation failure the session is left unchanged.
// @Tags         Costing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body dto.StepRequest true "Workflow action"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unknown action"
// @Failure      404 {object} dto.ErrorResponse "Session or ingredient not found"
// @Failure      409 {object} dto.ErrorResponse "Session has already been accepted"
// @Failure      422 {object} dto.ErrorResponse "Step cannot be applied - missing or invalid data"
// @Security     BearerAuth
// @Router       /api/costing/sessions/{id}/steps [post]
func (h *Handler) Step(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	session, err := h.costingService.Step(c.Request.Context(), c.Param("id"), req.Action)
	if err != nil {
		costingError(c, err)
		return
	}

	builder.SuccessOK(session)
}

// Finalize handles GET /api/costing/sessions/:id/result requests.
//
// @Summary      Get the cost result
// @Description  Returns the aggregated cost calculation once the session has reached its results: total cost, per-ingredient breakdown, margin surcharges, unit cost, and the three suggested price tiers.
// @Tags         Costing
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse "Cost result"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Failure      409 {object} dto.ErrorResponse "Session has not reached aggregation"
// @Security     BearerAuth
// @Router       /api/costing/sessions/{id}/result [get]
func (h *Handler) Finalize(c *gin.Context) {
	result, err := h.costingService.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		costingError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(result)
}

// Accept handles POST /api/costing/sessions/:id/accept requests.
//
// @Summary      Accept the cost result
// @Description  Accepts the calculated cost, persists it as a product, and closes the session. The session can no longer be stepped after accepting.
// @Tags         Costing
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse "Accepted cost result"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Failure      422 {object} dto.ErrorResponse "Session has no result to accept"
// @Security     BearerAuth
// @Router       /api/costing/sessions/{id}/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	acceptedBy := ""
	if email, exists := c.Get("user_email"); exists {
		if s, ok := email.(string); ok {
			acceptedBy = s
		}
	}

	result, err := h.costingService.Accept(c.Request.Context(), c.Param("id"), acceptedBy)
	if err != nil {
		costingError(c, err)
		return
	}

	auditLog(c, "accept_cost", "Cost result accepted", map[string]interface{}{
		"session_id": c.Param("id"),
		"unit_cost":  result.UnitCost,
	})

	NewResponseBuilder(c).SuccessOK(result)
}

// Abandon handles DELETE /api/costing/sessions/:id requests.
//
// @Summary      Abandon a costing session
// @Description  Discards an open session without persisting anything.
// @Tags         Costing
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse "Session discarded"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Security     BearerAuth
// @Router       /api/costing/sessions/{id} [delete]
func (h *Handler) Abandon(c *gin.Context) {
	id := c.Param("id")
	if err := h.costingService.Abandon(c.Request.Context(), id); err != nil {
		costingError(c, err)
		return
	}

	auditLog(c, "abandon_session", "Costing session abandoned", map[string]interface{}{
		"session_id": id,
	})

	NewResponseBuilder(c).SuccessOK(map[string]string{"message": "Session discarded"})
}
