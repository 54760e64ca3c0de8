// Package terminal renders engine reports as formatted text for the CLI.
package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/money"
)

// Report is everything the CLI prints for one period.
type Report struct {
	Owner         string
	Period        domain.Period
	Summary       domain.Summary
	ZoomLevels    []domain.Granularity
	TopExpenseCat []domain.RankedCategory
	TopIncomeCat  []domain.RankedCategory
}

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *Report) error {
	tmpl := `
Summary for {{.Owner}} ({{.Period.Days}} days)
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
Income:    {{amount .Summary.IncomeAmount}} ({{printf "%+.2f" .Summary.IncomeChange}}%)
Expenses:  {{amount .Summary.ExpensesAmount}} ({{printf "%+.2f" .Summary.ExpensesChange}}%)
Remaining: {{amount .Summary.RemainingAmount}} ({{printf "%+.2f" .Summary.RemainingChange}}%)
Suggested chart zoom: {{range .ZoomLevels}}{{.}} {{end}}
{{if .TopIncomeCat}}
=== Top income categories ===
{{range .TopIncomeCat}}- {{.Name}}: {{amount .Value}}
{{end}}{{end}}{{if .TopExpenseCat}}
=== Top expense categories ===
{{range .TopExpenseCat}}- {{.Name}}: {{amount .Value}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(template.FuncMap{
		"amount": money.Format,
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
