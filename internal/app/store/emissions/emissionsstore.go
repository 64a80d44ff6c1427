// internal/app/store/emissions/emissionsstore.go
package emissionsstore

import (
	"github.com/dalemusser/strataesg/internal/domain/models"
)

// DefaultCompanyName is used when no company name is configured.
const DefaultCompanyName = "GreenTech Manufacturing Co."

// Store provides the dashboard's emissions dataset.
// There is exactly one dataset per process; it is built at boot and never
// mutated. Get hands out deep copies so callers cannot change it either.
type Store struct {
	data models.EmissionsDataset
}

// New creates a store holding the default dataset.
// An empty companyName keeps DefaultCompanyName.
func New(companyName string) *Store {
	d := Default()
	if companyName != "" {
		d.Company.Name = companyName
	}
	return &Store{data: d}
}

// NewWith creates a store over an explicit dataset.
func NewWith(d models.EmissionsDataset) *Store {
	return &Store{data: d.Clone()}
}

// Get returns a copy of the dataset.
func (s *Store) Get() models.EmissionsDataset {
	return s.data.Clone()
}

// Default returns the built-in illustrative dataset.
func Default() models.EmissionsDataset {
	return models.EmissionsDataset{
		Company: models.Company{
			Name:          DefaultCompanyName,
			Industry:      "Manufacturing",
			Employees:     1250,
			ReportingYear: 2024,
		},
		TotalCO2: 8642.5,
		ScopeBreakdown: models.ScopeBreakdown{
			Scope1: models.ScopeFigure{Value: 2156.3, Percentage: 24.9, Description: "Direct emissions from owned sources"},
			Scope2: models.ScopeFigure{Value: 1834.7, Percentage: 21.2, Description: "Indirect emissions from purchased energy"},
			Scope3: models.ScopeFigure{Value: 4651.5, Percentage: 53.8, Description: "Value chain emissions"},
		},
		MonthlyTrends: []models.MonthlyEmission{
			{Month: "Jan", Emissions: 756.2},
			{Month: "Feb", Emissions: 698.4},
			{Month: "Mar", Emissions: 734.9},
			{Month: "Apr", Emissions: 712.3},
			{Month: "May", Emissions: 689.7},
			{Month: "Jun", Emissions: 745.1},
			{Month: "Jul", Emissions: 778.6},
			{Month: "Aug", Emissions: 762.8},
			{Month: "Sep", Emissions: 701.5},
			{Month: "Oct", Emissions: 723.4},
			{Month: "Nov", Emissions: 689.2},
			{Month: "Dec", Emissions: 650.4},
		},
		CategoryBreakdown: []models.CategoryEmission{
			{Category: "Energy", Emissions: 2845.2, Percentage: 32.9},
			{Category: "Transportation", Emissions: 1923.4, Percentage: 22.3},
			{Category: "Manufacturing", Emissions: 1567.8, Percentage: 18.1},
			{Category: "Supply Chain", Emissions: 1234.6, Percentage: 14.3},
			{Category: "Waste", Emissions: 612.3, Percentage: 7.1},
			{Category: "Business Travel", Emissions: 459.2, Percentage: 5.3},
		},
		RecentActivity: []models.ActivitySeed{
			{Text: "Connected utility billing integration", Category: "integration"},
			{Text: "Q3 emissions report generated", Category: "report"},
			{Text: "Energy usage peaked 12% above baseline in July", Category: "insight"},
		},
		Recommendations: []models.Recommendation{
			{ID: "led-retrofit", Title: "Switch facility lighting to LED", Reduction: 142.5, Payback: "1.8 years"},
			{ID: "solar-ppa", Title: "Sign a solar power purchase agreement", Reduction: 860.0, Payback: "4.5 years"},
			{ID: "fleet-ev", Title: "Electrify the delivery fleet", Reduction: 512.3, Payback: "3.2 years"},
		},
		OffsetProjects: []models.OffsetProject{
			{ID: "amazon-reforestation", Name: "Amazon Reforestation", Kind: "Nature-based", PricePerTon: 18.5, Tons: 100},
			{ID: "wind-india", Name: "Gujarat Wind Farm", Kind: "Renewable energy", PricePerTon: 12.0, Tons: 250},
			{ID: "dac-iceland", Name: "Direct Air Capture, Iceland", Kind: "Engineered removal", PricePerTon: 600.0, Tons: 5},
		},
		Integrations: []models.Integration{
			{ID: "sap", Name: "SAP ERP"},
			{ID: "utility-api", Name: "Utility Billing API"},
			{ID: "concur", Name: "SAP Concur Travel"},
		},
	}
}
