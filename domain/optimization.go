package domain

// OptimizationRequest is the caller's wish list. Duplicate IDs are collapsed
// before modeling; a title listed in both slices is treated as must-have.
type OptimizationRequest struct {
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`
}

// ConfiguredService is one selected service inside a configuration, trimmed
// to what the report needs.
type ConfiguredService struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	MonthlyCostCents uint   `json:"monthly_cost_cents"`
}

// Configuration is one concrete subscription bundle together with its
// derived statistics.
type Configuration struct {
	Services              []ConfiguredService `json:"services"`
	TotalMonthlyCostCents uint                `json:"total_monthly_cost_cents"`
	MustHaveCoverage      int                 `json:"must_have_coverage"`
	NiceToHaveCoverage    int                 `json:"nice_to_have_coverage"`
}

// OptimizationReport is the ordered result of one optimize call: distinct
// configurations from most cost-biased to most coverage-biased, plus the
// titles no active service could cover at all.
type OptimizationReport struct {
	Configurations        []Configuration `json:"configurations"`
	UnavailableMustHave   []string        `json:"unavailable_must_have"`
	UnavailableNiceToHave []string        `json:"unavailable_nice_to_have"`
}
