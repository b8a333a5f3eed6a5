package dto

// CategoriesResponse represents the configured expense categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// LeadSourcesResponse represents the configured lead sources.
type LeadSourcesResponse struct {
	LeadSources []string `json:"lead_sources"`
}
