package pricing

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Formatter formats cost estimates for display.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns a detailed, formatted cost estimate for terminal display.
func (f *Formatter) Format(e *Estimate) string {
	var sb strings.Builder

	width := 63

	// Header
	sb.WriteString(boxTop(width))
	sb.WriteString(boxLine("AKS Cost Estimate", width))
	sb.WriteString(boxLine(fmt.Sprintf("Cluster: %s", orDash(e.ClusterName)), width))
	sb.WriteString(boxLine(fmt.Sprintf("Region: %s", orDash(e.Region)), width))
	sb.WriteString(boxSep(width))

	// Line items
	sb.WriteString(boxEmpty(width))
	for _, item := range e.Items {
		var line string
		if item.UnitType != "" {
			line = fmt.Sprintf("%-22s %3d x %-18s %6d/mo",
				item.Description, item.Quantity, shortSize(item.UnitType), item.Total)
		} else {
			line = fmt.Sprintf("%-47s %6d/mo", item.Description, item.Total)
		}
		sb.WriteString(boxLine(line, width))
	}

	// Components
	sb.WriteString(boxDash(width))
	for _, c := range components(e) {
		sb.WriteString(boxLine(fmt.Sprintf("%-47s %6d/mo", c.label, c.value), width))
	}
	sb.WriteString(boxDash(width))
	sb.WriteString(boxLine(fmt.Sprintf("%-47s %6d/mo", "Total", e.Total), width))
	sb.WriteString(boxEmpty(width))
	sb.WriteString(boxLine(fmt.Sprintf("Annual estimate: $%d", e.AnnualCost()), width))
	sb.WriteString(boxBottom(width))

	// Footer
	sb.WriteString("\n  Estimated list prices in USD. Actual costs vary by region and usage.\n")

	return sb.String()
}

// FormatCompact returns a single-line cost summary.
func (f *Formatter) FormatCompact(e *Estimate) string {
	return fmt.Sprintf("%s (%s): $%d/mo ($%d/yr)",
		orDash(e.ClusterName), orDash(e.Region), e.Total, e.AnnualCost())
}

// FormatJSON returns the estimate as JSON.
func (f *Formatter) FormatJSON(e *Estimate) string {
	type jsonEstimate struct {
		ClusterName string     `json:"cluster_name"`
		Region      string     `json:"region"`
		Items       []LineItem `json:"items"`
		SystemPool  int        `json:"system_pool"`
		UserPools   int        `json:"user_pools"`
		Monitoring  int        `json:"monitoring"`
		Addons      int        `json:"addons"`
		Storage     int        `json:"storage"`
		MultiRegion int        `json:"multi_region"`
		Total       int        `json:"total"`
		Annual      int        `json:"annual"`
	}

	items := e.Items
	if items == nil {
		items = []LineItem{}
	}
	je := jsonEstimate{
		ClusterName: e.ClusterName,
		Region:      e.Region,
		Items:       items,
		SystemPool:  e.SystemPool,
		UserPools:   e.UserPools,
		Monitoring:  e.Monitoring,
		Addons:      e.Addons,
		Storage:     e.Storage,
		MultiRegion: e.MultiRegion,
		Total:       e.Total,
		Annual:      e.AnnualCost(),
	}

	data, _ := json.MarshalIndent(je, "", "  ")
	return string(data)
}

type component struct {
	label string
	value int
}

func components(e *Estimate) []component {
	return []component{
		{"System pool", e.SystemPool},
		{"User pools", e.UserPools},
		{"Monitoring", e.Monitoring},
		{"Add-ons", e.Addons},
		{"Storage", e.Storage},
		{"Multi-region", e.MultiRegion},
	}
}

func shortSize(size string) string {
	return strings.TrimPrefix(size, "Standard_")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Helper functions for box drawing

func boxTop(width int) string {
	return fmt.Sprintf("┌%s┐\n", strings.Repeat("─", width-2))
}

func boxBottom(width int) string {
	return fmt.Sprintf("└%s┘\n", strings.Repeat("─", width-2))
}

func boxSep(width int) string {
	return fmt.Sprintf("├%s┤\n", strings.Repeat("─", width-2))
}

func boxDash(width int) string {
	return fmt.Sprintf("│ %s │\n", strings.Repeat("─", width-4))
}

func boxLine(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n > width-4 {
		text = string([]rune(text)[:width-4])
		n = width - 4
	}
	return fmt.Sprintf("│ %s%s │\n", text, strings.Repeat(" ", width-4-n))
}

func boxEmpty(width int) string {
	return fmt.Sprintf("│%s│\n", strings.Repeat(" ", width-2))
}
