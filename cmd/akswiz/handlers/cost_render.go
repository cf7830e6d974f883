package handlers

import (
	"fmt"
	"strings"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/pricing"
)

// renderCostSummary produces a lipgloss-styled cost summary string.
func renderCostSummary(e *pricing.Estimate) string {
	var b strings.Builder

	name := e.ClusterName
	if name == "" {
		name = "(unnamed cluster)"
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  akswiz cost: %s", name)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s (%s)", config.RegionLabel(e.Region), e.Region)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	renderCostSection(&b, "Resources", e.Items, e.Total)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	for _, c := range []struct {
		label string
		value int
	}{
		{"System pool", e.SystemPool},
		{"User pools", e.UserPools},
		{"Monitoring", e.Monitoring},
		{"Add-ons", e.Addons},
		{"Storage", e.Storage},
		{"Multi-region", e.MultiRegion},
	} {
		if c.value == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %-13s $%6d /mo\n", c.label+":", c.value)
	}
	fmt.Fprintf(&b, "    %-13s %s\n", "Monthly:", greenStyle.Render(fmt.Sprintf("$%6d /mo", e.Total)))
	fmt.Fprintf(&b, "    %-13s $%6d /yr\n", "Annual:", e.AnnualCost())

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Note: estimated list prices in USD; actual costs vary by region and usage."))
	b.WriteString("\n")

	return b.String()
}

// renderCostSection renders the line items with table formatting.
func renderCostSection(b *strings.Builder, title string, items []pricing.LineItem, total int) {
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 58)))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %4s %11s %10s", "Resource", "Qty", "Unit Price", "Total/mo")))
	b.WriteString("\n")

	for _, item := range items {
		desc := item.Description
		if item.UnitType != "" {
			desc += " (" + strings.TrimPrefix(item.UnitType, "Standard_") + ")"
		}
		fmt.Fprintf(b, "  %-28s x%-3d $%9d  $%8d\n", desc, item.Quantity, item.UnitPrice, item.Total)
	}

	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 58)))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %-28s %16s $%8d\n", "Total", "", total)
}
