package domain

// Feature is a plan entitlement code as issued by the backend.
type Feature string

const (
	FeatureFinanceManagement   Feature = "FINANCE_MANAGEMENT"
	FeatureSchedule            Feature = "SCHEDULE"
	FeatureAcademicManagement  Feature = "ACADEMIC_MANAGEMENT"
	FeatureHRManagement        Feature = "HR_MANAGEMENT"
	FeatureCommunication       Feature = "COMMUNICATION"
	FeatureFoodManagement      Feature = "FOOD_MANAGEMENT"
	FeatureTransportManagement Feature = "TRANSPORT_MANAGEMENT"
	FeatureMultiBranch         Feature = "MULTI_BRANCH"
)

// Plan is a subscription tier label shown on upsell screens.
type Plan string

const (
	PlanBasic      Plan = "Basic"
	PlanStandard   Plan = "Standard"
	PlanPremium    Plan = "Premium"
	PlanEnterprise Plan = "Enterprise"
)

// AllFeatures lists every known feature code in display order.
var AllFeatures = []Feature{
	FeatureFinanceManagement,
	FeatureSchedule,
	FeatureAcademicManagement,
	FeatureHRManagement,
	FeatureCommunication,
	FeatureFoodManagement,
	FeatureTransportManagement,
	FeatureMultiBranch,
}

// minimumPlans is the cheapest tier that unlocks each feature.
var minimumPlans = map[Feature]Plan{
	FeatureFinanceManagement:   PlanStandard,
	FeatureSchedule:            PlanBasic,
	FeatureAcademicManagement:  PlanBasic,
	FeatureHRManagement:        PlanStandard,
	FeatureCommunication:       PlanStandard,
	FeatureFoodManagement:      PlanPremium,
	FeatureTransportManagement: PlanPremium,
	FeatureMultiBranch:         PlanEnterprise,
}

// MinimumPlan returns the tier that unlocks f. Unknown features report the
// top tier.
func MinimumPlan(f Feature) Plan {
	if p, ok := minimumPlans[f]; ok {
		return p
	}
	return PlanEnterprise
}

// DisplayName is the human label used by upsell screens.
func (f Feature) DisplayName() string {
	switch f {
	case FeatureFinanceManagement:
		return "Finance Management"
	case FeatureSchedule:
		return "Scheduling"
	case FeatureAcademicManagement:
		return "Academic Management"
	case FeatureHRManagement:
		return "HR Management"
	case FeatureCommunication:
		return "Communication"
	case FeatureFoodManagement:
		return "Food Management"
	case FeatureTransportManagement:
		return "Transport Management"
	case FeatureMultiBranch:
		return "Multi-Branch"
	default:
		return string(f)
	}
}
