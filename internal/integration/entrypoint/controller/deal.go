package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/usecase/deal"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
)

// DealController handles deal endpoints.
type DealController struct {
	createUseCase *deal.CreateDealUseCase
	getUseCase    *deal.GetDealUseCase
	listUseCase   *deal.ListDealsUseCase
	updateUseCase *deal.UpdateDealUseCase
	deleteUseCase *deal.DeleteDealUseCase
}

// NewDealController creates a new deal controller instance.
func NewDealController(
	createUseCase *deal.CreateDealUseCase,
	getUseCase *deal.GetDealUseCase,
	listUseCase *deal.ListDealsUseCase,
	updateUseCase *deal.UpdateDealUseCase,
	deleteUseCase *deal.DeleteDealUseCase,
) *DealController {
	return &DealController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /deals requests.
func (c *DealController) Create(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateDealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingDealFields),
		})
		return
	}

	closingDate, err := time.Parse(time.DateOnly, req.ClosingDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "closing_date must be YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidClosingDate),
		})
		return
	}

	input := deal.CreateDealInput{
		AgentID:                   agentID,
		HouseAddress:              req.HouseAddress,
		AmountSoldFor:             req.AmountSoldFor,
		CommissionPercent:         req.CommissionPercent,
		SplitPercent:              req.SplitPercent,
		TeamBrokerageSplitPercent: req.TeamBrokerageSplitPercent,
		LeadSource:                req.LeadSource,
		ClosingDate:               closingDate,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDealError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDealResponse(output.Deal))
}

// Get handles GET /deals/:id requests.
func (c *DealController) Get(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	dealID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid deal ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), deal.GetDealInput{
		ID:      dealID,
		AgentID: agentID,
	})
	if err != nil {
		handleDealError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDealResponse(output.Deal))
}

// List handles GET /deals requests. Optional year and month query parameters
// narrow the list.
func (c *DealController) List(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := deal.ListDealsInput{AgentID: agentID}

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "year must be a number",
			})
			return
		}
		input.Year = &year
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		monthInt, err := strconv.Atoi(monthStr)
		if err != nil || monthInt < 1 || monthInt > 12 || input.Year == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "month must be 1-12 and requires year",
			})
			return
		}
		month := time.Month(monthInt)
		input.Month = &month
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDealError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDealListResponse(output.Deals))
}

// Update handles PATCH /deals/:id requests.
func (c *DealController) Update(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	dealID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid deal ID format",
		})
		return
	}

	var req dto.UpdateDealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingDealFields),
		})
		return
	}

	input := deal.UpdateDealInput{
		ID:                        dealID,
		AgentID:                   agentID,
		HouseAddress:              req.HouseAddress,
		AmountSoldFor:             req.AmountSoldFor,
		CommissionPercent:         req.CommissionPercent,
		SplitPercent:              req.SplitPercent,
		TeamBrokerageSplitPercent: req.TeamBrokerageSplitPercent,
		LeadSource:                req.LeadSource,
	}
	if req.ClosingDate != nil {
		closingDate, err := time.Parse(time.DateOnly, *req.ClosingDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "closing_date must be YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidClosingDate),
			})
			return
		}
		input.ClosingDate = &closingDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDealError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDealResponse(output.Deal))
}

// Delete handles DELETE /deals/:id requests.
func (c *DealController) Delete(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	dealID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid deal ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), deal.DeleteDealInput{
		ID:      dealID,
		AgentID: agentID,
	}); err != nil {
		handleDealError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleDealError handles deal errors and returns appropriate HTTP responses.
func handleDealError(ctx *gin.Context, err error) {
	var dealErr *domainerror.DealError
	if errors.As(err, &dealErr) {
		ctx.JSON(statusCodeForDealError(dealErr.Code), dto.ErrorResponse{
			Error: dealErr.Message,
			Code:  string(dealErr.Code),
		})
		return
	}

	var capErr *domainerror.CapError
	if errors.As(err, &capErr) {
		handleCapError(ctx, capErr)
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForDealError maps deal error codes to HTTP status codes.
func statusCodeForDealError(code domainerror.DealErrorCode) int {
	switch code {
	case domainerror.ErrCodeDealNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedDeal:
		return http.StatusForbidden
	case domainerror.ErrCodeMissingHouseAddress,
		domainerror.ErrCodeInvalidDealAmount,
		domainerror.ErrCodeInvalidCommissionPercent,
		domainerror.ErrCodeInvalidSplitPercent,
		domainerror.ErrCodeInvalidTeamSplitPercent,
		domainerror.ErrCodeInvalidLeadSource,
		domainerror.ErrCodeInvalidClosingDate,
		domainerror.ErrCodeMissingDealFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-identity response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Agent not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
