package models

// ProviderSettings is the persisted set of enabled providers.
type ProviderSettings struct {
	EnabledProviders []ProviderID `json:"enabledProviders"`
}
