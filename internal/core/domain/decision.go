package domain

// DecisionKind is the tag of a gate Decision.
type DecisionKind string

const (
	DecisionAllow       DecisionKind = "allow"
	DecisionRedirect    DecisionKind = "redirect"
	DecisionPending     DecisionKind = "pending"
	DecisionUpsell      DecisionKind = "upsell"
	DecisionMaintenance DecisionKind = "maintenance"
)

// Decision is the result of a single guard evaluation.
//
// Redirect carries Target and, for the admin-area fallback, ClearPrincipal.
// Upsell carries Feature and MinPlan. Reason records the error class behind a
// non-allow decision for logging and auditing; it is never returned as an error.
type Decision struct {
	Kind           DecisionKind `json:"kind"`
	Target         string       `json:"target,omitempty"`
	ClearPrincipal bool         `json:"clear_principal,omitempty"`
	Feature        Feature      `json:"feature,omitempty"`
	MinPlan        Plan         `json:"min_plan,omitempty"`
	Reason         error        `json:"-"`
}

func Allow() Decision { return Decision{Kind: DecisionAllow} }

func Pending() Decision { return Decision{Kind: DecisionPending} }

func Redirect(target string, reason error) Decision {
	return Decision{Kind: DecisionRedirect, Target: target, Reason: reason}
}

// ForcedLogout redirects to target and asks the caller to clear the principal.
func ForcedLogout(target string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target, ClearPrincipal: true, Reason: ErrAuthUnroutable}
}

func Upsell(f Feature, minPlan Plan) Decision {
	return Decision{Kind: DecisionUpsell, Feature: f, MinPlan: minPlan, Reason: ErrFeatureDenied}
}

func Maintenance() Decision { return Decision{Kind: DecisionMaintenance} }

// Allowed reports whether evaluation may continue to the next guard.
func (d Decision) Allowed() bool { return d.Kind == DecisionAllow }
