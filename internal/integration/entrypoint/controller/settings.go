package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnl-tracker/backend/internal/application/usecase/settings"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles settings endpoints.
type SettingsController struct {
	settingsUseCase *settings.GetSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(settingsUseCase *settings.GetSettingsUseCase) *SettingsController {
	return &SettingsController{
		settingsUseCase: settingsUseCase,
	}
}

// GetCategories handles GET /settings/categories requests.
func (c *SettingsController) GetCategories(ctx *gin.Context) {
	output := c.settingsUseCase.Categories(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.CategoriesResponse{Categories: output.Categories})
}

// GetLeadSources handles GET /settings/lead-sources requests.
func (c *SettingsController) GetLeadSources(ctx *gin.Context) {
	output := c.settingsUseCase.LeadSources(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.LeadSourcesResponse{LeadSources: output.LeadSources})
}
