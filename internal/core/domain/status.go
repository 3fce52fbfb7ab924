package domain

// OperationalStatus is the process-wide status published by the backend.
type OperationalStatus struct {
	MaintenanceMode  bool    `json:"maintenance_mode"`
	RegistrationOpen bool    `json:"registration_open"`
	Pricing          Pricing `json:"pricing"`
}

// DefaultOperationalStatus is in effect until the first successful fetch and
// stays in effect when fetches fail: maintenance off, registration open.
func DefaultOperationalStatus() OperationalStatus {
	return OperationalStatus{
		MaintenanceMode:  false,
		RegistrationOpen: true,
		Pricing: Pricing{
			Basic:    49,
			Standard: 99,
			Premium:  199,
			Currency: "USD",
		},
	}
}
