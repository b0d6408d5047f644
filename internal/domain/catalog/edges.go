package catalog

// Edges are directed, weighted relations from a catalog item to an
// alternative. Numeric fields are validated at construction so scoring never
// sees a ratio of 0 or a confidence outside [0,1].

// ContextFactors restricts where an edge applies. An empty set on a dimension
// is a wildcard: the edge applies for every value of that dimension.
type ContextFactors struct {
	RecipeTypes    []string
	Cuisines       []string
	CookingMethods []string
}

// RuleContext is the caller-supplied context an edge is matched against
type RuleContext struct {
	RecipeType    string
	Cuisine       string
	CookingMethod string
}

// Matches reports whether the edge context admits the query context.
// Each dimension the query sets must be a wildcard or contain the value.
func (f ContextFactors) Matches(q RuleContext) bool {
	if q.RecipeType != "" && !wildcardOrMember(f.RecipeTypes, q.RecipeType) {
		return false
	}
	if q.Cuisine != "" && !wildcardOrMember(f.Cuisines, q.Cuisine) {
		return false
	}
	if q.CookingMethod != "" && !wildcardOrMember(f.CookingMethods, q.CookingMethod) {
		return false
	}
	return true
}

func wildcardOrMember(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// SubstitutionImpact describes the sensory and nutritional deltas of swapping
// one ingredient for another
type SubstitutionImpact struct {
	Taste     string
	Texture   string
	Color     string
	Nutrition string
}

// AdaptationImpact describes the consequences of swapping one appliance for
// another
type AdaptationImpact struct {
	Technique  string
	Timing     string
	Quality    string
	Difficulty string
}

// Adjustment is a required compensation that comes with an edge
type Adjustment struct {
	Description        string
	StepNumber         int // 0 when not tied to a specific step
	Compensation       string
	TimingDeltaMinutes int
	TimingReason       string
}

// SubstitutionEdge relates an ingredient to an alternative ingredient
type SubstitutionEdge struct {
	OriginalID    string
	AlternativeID string
	Ratio         float64 // 1 means "same amount"
	Confidence    float64
	Context       ContextFactors
	Impact        SubstitutionImpact
	Adjustments   []Adjustment
	DietaryTags   []string
}

// NewSubstitutionEdge creates a substitution edge with validation
func NewSubstitutionEdge(originalID, alternativeID string, ratio, confidence float64) (SubstitutionEdge, error) {
	e := SubstitutionEdge{
		OriginalID:    originalID,
		AlternativeID: alternativeID,
		Ratio:         ratio,
		Confidence:    confidence,
	}
	if err := e.Validate(); err != nil {
		return SubstitutionEdge{}, err
	}
	return e, nil
}

// Validate validates the edge
func (e SubstitutionEdge) Validate() error {
	if e.OriginalID == "" || e.AlternativeID == "" {
		return ErrEmptyItemID
	}
	if e.Ratio <= 0 {
		return ErrInvalidRatio
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}

// HasDietaryTag reports whether the edge is tagged for the given restriction
func (e SubstitutionEdge) HasDietaryTag(tag string) bool {
	for _, t := range e.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// AdaptationEdge relates an appliance to an alternative appliance
type AdaptationEdge struct {
	OriginalID    string
	AlternativeID string
	Confidence    float64
	Context       ContextFactors
	Impact        AdaptationImpact
	Adjustments   []Adjustment
}

// NewAdaptationEdge creates an adaptation edge with validation
func NewAdaptationEdge(originalID, alternativeID string, confidence float64) (AdaptationEdge, error) {
	e := AdaptationEdge{
		OriginalID:    originalID,
		AlternativeID: alternativeID,
		Confidence:    confidence,
	}
	if err := e.Validate(); err != nil {
		return AdaptationEdge{}, err
	}
	return e, nil
}

// Validate validates the edge
func (e AdaptationEdge) Validate() error {
	if e.OriginalID == "" || e.AlternativeID == "" {
		return ErrEmptyItemID
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return ErrInvalidConfidence
	}
	return nil
}
