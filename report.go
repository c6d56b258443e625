package mapbench

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// GroupRecords groups records by backend name. Names keep the order they
// first appear in; the records of a name are sorted by thread count.
func GroupRecords(records []*Record) ([]string, map[string][]*Record) {
	names := make([]string, 0)
	groups := make(map[string][]*Record)
	for _, r := range records {
		if _, ok := groups[r.Name]; !ok {
			names = append(names, r.Name)
		}
		groups[r.Name] = append(groups[r.Name], r)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Threads < group[j].Threads
		})
	}
	return names, groups
}

var (
	reportHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	reportNameStyle   = reportCellStyle.Foreground(lipgloss.Color("12"))
)

// RenderReport renders a table of throughput and latency per backend and
// thread count. Scaling is the throughput relative to the lowest thread
// count of the same backend.
func RenderReport(records []*Record) string {
	names, groups := GroupRecords(records)
	rows := make([][]string, 0, len(records))
	for _, name := range names {
		group := groups[name]
		base := group[0].Throughput
		for _, r := range group {
			scaling := "-"
			if base > 0 {
				scaling = fmt.Sprintf("%.2fx", r.Throughput/base)
			}
			rows = append(rows, []string{
				r.Name,
				strconv.Itoa(r.Threads),
				humanize.Comma(int64(r.TotalOps)),
				humanize.SIWithDigits(r.Throughput, 2, "op/s"),
				r.Latency.String(),
				r.Spent.String(),
				scaling,
			})
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Backend", "Threads", "Total ops", "Throughput", "Latency", "Spent", "Scaling").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return reportHeaderStyle
			case col == 0:
				return reportNameStyle
			default:
				return reportCellStyle
			}
		})
	return t.Render()
}
