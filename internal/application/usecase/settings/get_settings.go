// Package settings exposes the configured reference lists clients build
// their pickers from.
package settings

import "context"

// GetCategoriesOutput represents the output of listing expense categories.
type GetCategoriesOutput struct {
	Categories []string
}

// GetLeadSourcesOutput represents the output of listing lead sources.
type GetLeadSourcesOutput struct {
	LeadSources []string
}

// GetSettingsUseCase serves the configured expense categories and lead
// sources. These are deployment-level lists; writes validate against the
// same values.
type GetSettingsUseCase struct {
	categories  []string
	leadSources []string
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(categories, leadSources []string) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		categories:  categories,
		leadSources: leadSources,
	}
}

// Categories returns the configured expense categories.
func (uc *GetSettingsUseCase) Categories(_ context.Context) *GetCategoriesOutput {
	return &GetCategoriesOutput{Categories: uc.categories}
}

// LeadSources returns the configured lead sources.
func (uc *GetSettingsUseCase) LeadSources(_ context.Context) *GetLeadSourcesOutput {
	return &GetLeadSourcesOutput{LeadSources: uc.leadSources}
}
