package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/naka-gawa/github-stars/internal/domain"
)

// Plain renders one line per repository:
//
//	<stars>  <name>  <description>
//
// Star counts are right aligned and names left aligned to the widest value
// among the displayed repositories. The last line holds the star total.
type Plain struct{}

func (Plain) Render(w io.Writer, summary *domain.StarSummary) error {
	countWidth, nameWidth := 0, 0
	for _, repo := range summary.Repositories {
		countWidth = max(countWidth, text.RuneWidthWithoutEscSequences(strconv.Itoa(repo.Stars)))
		nameWidth = max(nameWidth, text.RuneWidthWithoutEscSequences(repo.Name))
	}

	bw := bufio.NewWriter(w)
	for _, repo := range summary.Repositories {
		fmt.Fprintf(bw, "%s  %s  %s\n",
			text.AlignRight.Apply(strconv.Itoa(repo.Stars), countWidth),
			text.AlignLeft.Apply(repo.Name, nameWidth),
			repo.DescriptionOr(NoDescription),
		)
	}
	fmt.Fprintln(bw, totalLine(summary))
	return bw.Flush()
}
