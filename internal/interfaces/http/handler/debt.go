package handler

import (
	"net/http"

	appdebt "github.com/debttrack/backend/internal/application/debt"
	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/debttrack/backend/internal/infrastructure/export"
	"github.com/debttrack/backend/internal/interfaces/http/dto"
	"github.com/debttrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DebtHandler exposes the debt lifecycle endpoints
type DebtHandler struct {
	BaseHandler
	service  *appdebt.Service
	exporter *export.DebtExporter
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(service *appdebt.Service) *DebtHandler {
	return &DebtHandler{
		service:  service,
		exporter: export.NewDebtExporter(),
	}
}

// Create handles POST /debts. The creditor is always the authenticated user.
func (h *DebtHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var body CreateDebtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, body.toRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /debts/:id
func (h *DebtHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	debtID, ok := h.bindDebtID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), debtID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /debts/:id
func (h *DebtHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	debtID, ok := h.bindDebtID(c)
	if !ok {
		return
	}

	var body UpdateDebtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), debtID, userID, body.toRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /debts/:id
func (h *DebtHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	debtID, ok := h.bindDebtID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), debtID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Pay handles POST /debts/:id/pay
func (h *DebtHandler) Pay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	debtID, ok := h.bindDebtID(c)
	if !ok {
		return
	}

	resp, err := h.service.MarkAsPaid(c.Request.Context(), debtID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /debts
func (h *DebtHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query ListDebtsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, query.toRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(
		page.Data, page.Total, page.Page, page.Limit, page.TotalPages))
}

// Stats handles GET /debts/stats
func (h *DebtHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Export handles GET /debts/export, streaming the filtered listing as a
// CSV or JSON download
func (h *DebtHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query ExportDebtsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	format := export.Format(query.Format)
	if query.Format == "" {
		format = export.FormatCSV
	}

	req := query.toRequest()
	req.Limit = debt.MaxLimit

	page, err := h.service.List(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payload, err := h.exporter.Export(page.Data, format)
	if err != nil {
		h.InternalError(c, "Failed to export debts")
		return
	}

	filename := h.exporter.Filename("debts", format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), payload)
}

func (h *DebtHandler) bindDebtID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid debt ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid debt ID")
		return uuid.Nil, false
	}
	return id, true
}
