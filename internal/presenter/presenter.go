// Package presenter renders a star summary for humans.
//
// Two interchangeable formats exist: Plain, aligned columns without borders,
// and Table, a bordered table. Both write the same content: one entry per
// retained repository followed by the star total.
package presenter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/naka-gawa/github-stars/internal/domain"
)

// Format names accepted by New.
const (
	FormatPlain = "plain"
	FormatTable = "table"
)

// NoDescription is printed in place of an absent description.
const NoDescription = "-"

// Presenter renders a summary to w. Implementations must not modify the summary.
type Presenter interface {
	Render(w io.Writer, summary *domain.StarSummary) error
}

var presenters = map[string]func() Presenter{
	FormatPlain: func() Presenter { return Plain{} },
	FormatTable: func() Presenter { return Table{} },
}

// New returns the presenter registered under format.
func New(format string) (Presenter, error) {
	factory, ok := presenters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (expected one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return factory(), nil
}

// Formats lists the supported format names in alphabetical order.
func Formats() []string {
	names := make([]string, 0, len(presenters))
	for name := range presenters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func totalLine(summary *domain.StarSummary) string {
	return fmt.Sprintf("Total stars: %d", summary.TotalStars)
}
