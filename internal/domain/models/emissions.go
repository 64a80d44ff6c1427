// internal/domain/models/emissions.go
package models

// Company describes the reporting organisation.
type Company struct {
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Employees     int    `json:"employees"`
	ReportingYear int    `json:"reporting_year"`
}

// ScopeFigure is one GHG Protocol scope's share of total emissions.
type ScopeFigure struct {
	Value       float64 `json:"value"`      // tCO2e
	Percentage  float64 `json:"percentage"` // share of TotalCO2, display only
	Description string  `json:"description"`
}

// ScopeBreakdown splits emissions by scope.
type ScopeBreakdown struct {
	Scope1 ScopeFigure `json:"scope1"`
	Scope2 ScopeFigure `json:"scope2"`
	Scope3 ScopeFigure `json:"scope3"`
}

// MonthlyEmission is one point of the monthly trend.
type MonthlyEmission struct {
	Month     string  `json:"month"`
	Emissions float64 `json:"emissions"`
}

// CategoryEmission is one emission source category.
type CategoryEmission struct {
	Category   string  `json:"category"`
	Emissions  float64 `json:"emissions"`
	Percentage float64 `json:"percentage"`
}

// EmissionsDataset is the immutable record every renderer reads.
// Percentages within a breakdown sum to roughly 100; nothing enforces it.
type EmissionsDataset struct {
	Company           Company            `json:"company"`
	TotalCO2          float64            `json:"total_co2"`
	ScopeBreakdown    ScopeBreakdown     `json:"scope_breakdown"`
	MonthlyTrends     []MonthlyEmission  `json:"monthly_trends"`
	CategoryBreakdown []CategoryEmission `json:"category_breakdown"`
	RecentActivity    []ActivitySeed     `json:"recent_activity"`
	Recommendations   []Recommendation   `json:"recommendations"`
	OffsetProjects    []OffsetProject    `json:"offset_projects"`
	Integrations      []Integration      `json:"integrations"`
}

// ActivitySeed is a feed entry present when the dashboard boots.
type ActivitySeed struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Recommendation is a suggested reduction measure.
type Recommendation struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Reduction float64 `json:"reduction"` // tCO2e per year
	Payback   string  `json:"payback"`
}

// OffsetProject is a purchasable carbon offset.
type OffsetProject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	PricePerTon float64 `json:"price_per_ton"`
	Tons        float64 `json:"tons"`
}

// Integration is an external data source that can be connected.
type Integration struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Clone returns a deep copy.
func (d EmissionsDataset) Clone() EmissionsDataset {
	cp := d
	cp.MonthlyTrends = append([]MonthlyEmission(nil), d.MonthlyTrends...)
	cp.CategoryBreakdown = append([]CategoryEmission(nil), d.CategoryBreakdown...)
	cp.RecentActivity = append([]ActivitySeed(nil), d.RecentActivity...)
	cp.Recommendations = append([]Recommendation(nil), d.Recommendations...)
	cp.OffsetProjects = append([]OffsetProject(nil), d.OffsetProjects...)
	cp.Integrations = append([]Integration(nil), d.Integrations...)
	return cp
}

// Scopes returns the three scope figures in order with their labels.
func (b ScopeBreakdown) Scopes() ([]string, []ScopeFigure) {
	return []string{"Scope 1", "Scope 2", "Scope 3"},
		[]ScopeFigure{b.Scope1, b.Scope2, b.Scope3}
}
