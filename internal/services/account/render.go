package account

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	headerRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
			Bold(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}).
			Bold(true).
			MarginTop(1)
)

// Render formats the report as a terminal table.
func Render(r Report, quote string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SPOT BALANCES"))
	b.WriteByte('\n')
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-8s %18s %18s", "ASSET", "AMOUNT", "VALUE "+quote)))
	b.WriteByte('\n')

	for _, h := range r.Holdings {
		b.WriteString(fmt.Sprintf("%-8s %18s %18s\n",
			h.Asset, h.Amount.StringFixed(6), h.Value.StringFixed(2)))
	}

	b.WriteString(totalStyle.Render(fmt.Sprintf("Total: %s %s", r.Total.StringFixed(2), quote)))
	b.WriteByte('\n')
	return b.String()
}
