package emissionsstore

import (
	"math"
	"testing"
)

func TestNew_DefaultCompany(t *testing.T) {
	s := New("")
	if got := s.Get().Company.Name; got != DefaultCompanyName {
		t.Errorf("Company.Name = %q, want %q", got, DefaultCompanyName)
	}

	s = New("Acme Corp")
	if got := s.Get().Company.Name; got != "Acme Corp" {
		t.Errorf("Company.Name = %q, want %q", got, "Acme Corp")
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := New("")

	d := s.Get()
	d.TotalCO2 = 0
	d.MonthlyTrends[0].Emissions = -1
	d.CategoryBreakdown[0].Category = "changed"

	again := s.Get()
	if again.TotalCO2 != 8642.5 {
		t.Errorf("TotalCO2 = %v, want 8642.5", again.TotalCO2)
	}
	if again.MonthlyTrends[0].Emissions == -1 {
		t.Error("mutating a returned slice changed the store")
	}
	if again.CategoryBreakdown[0].Category != "Energy" {
		t.Error("mutating a returned category changed the store")
	}
}

func TestDefault_FiguresAreConsistent(t *testing.T) {
	d := Default()

	_, scopes := d.ScopeBreakdown.Scopes()
	var scopeSum, scopePct float64
	for _, s := range scopes {
		scopeSum += s.Value
		scopePct += s.Percentage
	}
	if math.Abs(scopeSum-d.TotalCO2) > 0.01 {
		t.Errorf("scope values sum to %v, want %v", scopeSum, d.TotalCO2)
	}
	if math.Abs(scopePct-100) > 0.5 {
		t.Errorf("scope percentages sum to %v, want about 100", scopePct)
	}

	var catSum, catPct float64
	for _, c := range d.CategoryBreakdown {
		catSum += c.Emissions
		catPct += c.Percentage
	}
	if math.Abs(catSum-d.TotalCO2) > 0.01 {
		t.Errorf("category emissions sum to %v, want %v", catSum, d.TotalCO2)
	}
	if math.Abs(catPct-100) > 0.5 {
		t.Errorf("category percentages sum to %v, want about 100", catPct)
	}

	if len(d.MonthlyTrends) != 12 {
		t.Errorf("len(MonthlyTrends) = %d, want 12", len(d.MonthlyTrends))
	}
}
