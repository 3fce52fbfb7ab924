package domain

// Pricing holds the per-tier monthly prices shown on pricing and upsell screens.
type Pricing struct {
	Basic    float64 `json:"basic"`
	Standard float64 `json:"standard"`
	Premium  float64 `json:"premium"`
	Currency string  `json:"currency"`
}

// TenantConfig is the school configuration fetched for a portal slug.
type TenantConfig struct {
	SchoolName string    `json:"school_name"`
	Plan       string    `json:"plan"`
	Pricing    Pricing   `json:"pricing"`
	Features   []Feature `json:"features"`
}

// HasFeature reports whether f is part of the configured plan.
func (c TenantConfig) HasFeature(f Feature) bool {
	for _, have := range c.Features {
		if have == f {
			return true
		}
	}
	return false
}

// TenantContext binds a portal slug to its fetched configuration.
type TenantContext struct {
	Slug   string       `json:"slug"`
	Config TenantConfig `json:"config"`
}
