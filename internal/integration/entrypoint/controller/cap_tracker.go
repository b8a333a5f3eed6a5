package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
)

// CapTrackerController handles commission cap endpoints.
type CapTrackerController struct {
	getProgressUseCase  *captracker.GetProgressUseCase
	updateConfigUseCase *captracker.UpdateConfigUseCase
}

// NewCapTrackerController creates a new cap tracker controller instance.
func NewCapTrackerController(
	getProgressUseCase *captracker.GetProgressUseCase,
	updateConfigUseCase *captracker.UpdateConfigUseCase,
) *CapTrackerController {
	return &CapTrackerController{
		getProgressUseCase:  getProgressUseCase,
		updateConfigUseCase: updateConfigUseCase,
	}
}

// GetProgress handles GET /cap-tracker/progress requests. The year query
// parameter defaults to the current year.
func (c *CapTrackerController) GetProgress(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	year := time.Now().UTC().Year()
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "year must be a number",
				Code:  string(domainerror.ErrCodeInvalidCapYear),
			})
			return
		}
		year = parsed
	}

	output, err := c.getProgressUseCase.Execute(ctx.Request.Context(), captracker.GetProgressInput{
		AgentID: agentID,
		Year:    year,
	})
	if err != nil {
		handleCapTrackerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCapProgressResponse(output.Progress))
}

// UpdateConfig handles PUT /cap-tracker/config requests.
func (c *CapTrackerController) UpdateConfig(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateCapConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidTotalCap),
		})
		return
	}

	output, err := c.updateConfigUseCase.Execute(ctx.Request.Context(), captracker.UpdateConfigInput{
		AgentID:  agentID,
		Year:     req.Year,
		TotalCap: req.TotalCap,
	})
	if err != nil {
		handleCapTrackerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCapProgressResponse(output.Progress))
}

// handleCapTrackerError handles cap errors and returns appropriate HTTP responses.
func handleCapTrackerError(ctx *gin.Context, err error) {
	var capErr *domainerror.CapError
	if errors.As(err, &capErr) {
		handleCapError(ctx, capErr)
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleCapError writes the response for a typed cap error. A locked period
// is a retryable 409.
func handleCapError(ctx *gin.Context, capErr *domainerror.CapError) {
	statusCode := http.StatusInternalServerError
	switch capErr.Code {
	case domainerror.ErrCodeCapPeriodLocked:
		statusCode = http.StatusConflict
	case domainerror.ErrCodeInvalidTotalCap, domainerror.ErrCodeInvalidCapYear:
		statusCode = http.StatusBadRequest
	case domainerror.ErrCodeCapConfigNotFound:
		statusCode = http.StatusNotFound
	}

	ctx.JSON(statusCode, dto.ErrorResponse{
		Error:     capErr.Message,
		Code:      string(capErr.Code),
		Retryable: capErr.Retryable,
	})
}
