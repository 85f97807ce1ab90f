package models

// RecommendationCategory is a closed set; adding a category is a
// compile-time-visible change, not a new map key.
type RecommendationCategory string

const (
	CategoryCostOptimization RecommendationCategory = "cost_optimization"
	CategoryWorkingCapital   RecommendationCategory = "working_capital"
	CategoryFinancialProduct RecommendationCategory = "financial_product"
	CategoryCompliance       RecommendationCategory = "compliance"
	CategoryGeneral          RecommendationCategory = "general"
)

// Priority orders recommendations for the caller.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority, lower sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Effort is the qualitative implementation cost of a recommendation.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Recommendation is one ranked improvement action. EstimatedImpact is the
// monetary value of closing part of the gap to benchmark; nil when the
// underlying metric was undefined. Language tags which prose locale the
// external rendering collaborator should use; it never changes the numbers.
type Recommendation struct {
	CompanyID       string                 `json:"company_id"`
	Category        RecommendationCategory `json:"category"`
	Priority        Priority               `json:"priority"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	EstimatedImpact *float64               `json:"estimated_impact,omitempty"`
	Effort          Effort                 `json:"implementation_effort,omitempty"`
	Language        string                 `json:"language"`
}
