package presenter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/naka-gawa/github-stars/internal/domain"
)

// Table renders a bordered table with a Count/Name/Description header, a blank
// row after the repositories and a right aligned total spanning all columns.
type Table struct{}

func (Table) Render(w io.Writer, summary *domain.StarSummary) error {
	t := table.NewWriter()

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	t.AppendHeader(table.Row{"Count", "Name", "Description"})
	for _, repo := range summary.Repositories {
		t.AppendRow(table.Row{
			fmt.Sprintf("⭐ %d", repo.Stars),
			repo.Name,
			repo.DescriptionOr(NoDescription),
		})
	}

	total := totalLine(summary)
	t.AppendRow(table.Row{"", "", ""})
	t.AppendRow(table.Row{total, total, total}, table.RowConfig{
		AutoMerge:      true,
		AutoMergeAlign: text.AlignRight,
	})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
