// internal/app/dashboard/widgets/config.go
package widgets

import (
	"fmt"

	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/domain/models"
)

// Palette is the fixed widget palette. Series wider than the palette reuse
// it cyclically.
var Palette = []string{
	"#10b981", // emerald
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
}

// Color returns the palette color for series index i.
func Color(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// PercentLabel formats value as a share of total with one decimal, e.g.
// "24.9%". A zero total yields "0.0%".
func PercentLabel(value, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", value/total*100)
}

// tooltip is the label a doughnut segment or bar carries.
func tooltip(label string, value, total float64) string {
	return fmt.Sprintf("%s (%s)", label, PercentLabel(value, total))
}

// SpecFor returns the chart spec for slot. It depends only on the dataset
// and the palette; width and height are left to the caller.
func SpecFor(slot Slot, d models.EmissionsDataset) (charting.Spec, bool) {
	switch slot {
	case SlotScope:
		names, figs := d.ScopeBreakdown.Scopes()
		spec := charting.Spec{Kind: charting.KindDoughnut, Title: "Emissions by Scope"}
		for i, f := range figs {
			spec.Labels = append(spec.Labels, tooltip(names[i], f.Value, d.TotalCO2))
			spec.Values = append(spec.Values, f.Value)
			spec.Colors = append(spec.Colors, Color(i))
		}
		return spec, true

	case SlotTrend:
		spec := charting.Spec{
			Kind:   charting.KindLine,
			Title:  "Monthly Emissions (tCO2e)",
			Colors: []string{Color(0)},
		}
		for _, m := range d.MonthlyTrends {
			spec.Labels = append(spec.Labels, m.Month)
			spec.Values = append(spec.Values, m.Emissions)
		}
		return spec, true

	case SlotCategory:
		spec := charting.Spec{Kind: charting.KindBar, Title: "Emissions by Category"}
		for i, c := range d.CategoryBreakdown {
			spec.Labels = append(spec.Labels, tooltip(c.Category, c.Emissions, d.TotalCO2))
			spec.Values = append(spec.Values, c.Emissions)
			spec.Colors = append(spec.Colors, Color(i))
		}
		return spec, true
	}
	return charting.Spec{}, false
}
