package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pnl-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
)

// SummaryController handles monthly summary endpoints.
type SummaryController struct {
	getUseCase *summary.GetMonthlySummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(getUseCase *summary.GetMonthlySummaryUseCase) *SummaryController {
	return &SummaryController{
		getUseCase: getUseCase,
	}
}

// Get handles GET /summary requests. The month query parameter is YYYY-MM
// and defaults to the current month.
func (c *SummaryController) Get(ctx *gin.Context) {
	agentID, ok := middleware.GetAgentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "month must be YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidMonth),
			})
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), summary.GetMonthlySummaryInput{
		AgentID: agentID,
		Year:    year,
		Month:   month,
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output.Summary))
}

// handleSummaryError handles summary errors and returns appropriate HTTP responses.
func handleSummaryError(ctx *gin.Context, err error) {
	var summaryErr *domainerror.SummaryError
	if errors.As(err, &summaryErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: summaryErr.Message,
			Code:  string(summaryErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
