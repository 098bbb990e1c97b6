package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
)

// report kinds
const (
	LayoutReport    = "layout"
	InvariantReport = "invariant"
	MergeReport     = "merge"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	sortStyle    = color.New(color.FgMagenta)
	exprStyle    = color.New(color.FgGreen)
	summaryStyle = color.New(color.FgGreen, color.Bold)
	noStyle      = color.New(color.FgWhite)
)

// reportFormatter is the interface that wraps the ReportTemplate method.
// Implementations render one kind of report.
type reportFormatter interface {
	ReportTemplate() string
}

// getReportFormatter returns the formatter for the given report kind.
func getReportFormatter(kind string) reportFormatter {
	switch kind {
	case InvariantReport:
		return &InvariantFormatter{}
	case MergeReport:
		return &MergeFormatter{}
	default:
		return &LayoutFormatter{}
	}
}

// Report is the result of one command over one input.
type Report struct {
	Kind   string
	Source string
	// Shape is a one-line summary of the value's shape.
	Shape string
	Slots []Slot
	// Exprs holds invariants for invariant reports.
	Exprs []string

	// merge reports
	Merged bool
	Shared int
	Ites   int
}

// GenerateFormattedReport renders reports in order.
func GenerateFormattedReport(reports []Report) string {
	var builder strings.Builder
	for _, r := range reports {
		builder.WriteString(buildReport(r, getReportFormatter(r.Kind)))
	}
	return builder.String()
}

type reportData struct {
	Report
	IndexWidth int
	PathWidth  int
	SortWidth  int
	Padding    string
}

func buildReport(r Report, formatter reportFormatter) string {
	data := reportData{Report: r, IndexWidth: calculateMaxIndexWidth(len(r.Slots))}
	for _, s := range r.Slots {
		data.PathWidth = max(data.PathWidth, len(s.Path))
		data.SortWidth = max(data.SortWidth, len(s.Sort))
	}
	data.Padding = strings.Repeat(" ", data.IndexWidth+1)

	funcMap := template.FuncMap{
		"header":  header,
		"slots":   slotTable,
		"exprs":   exprList,
		"summary": summary,
		"failure": failure,
	}

	tmpl := template.Must(template.New("report").Funcs(funcMap).Parse(formatter.ReportTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting report: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(kind, source, shape string, width int) string {
	var endString string
	endString = kindStyle.Sprintf("%s: ", kind)
	endString += noStyle.Sprintf("%s\n", shape)

	padding := strings.Repeat(" ", width)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s\n", source)
	return endString
}

func slotTable(slots []Slot, indexWidth, pathWidth, sortWidth int, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)
	for _, s := range slots {
		idx := fmt.Sprintf("%*d", indexWidth, s.Index)
		endString += lineStyle.Sprintf("%s | ", idx)
		line := fmt.Sprintf("%-*s  ", pathWidth, s.Path)
		if s.Expr == "" {
			endString += noStyle.Sprint(line)
			endString += sortStyle.Sprintf("%s\n", s.Sort)
			continue
		}
		endString += noStyle.Sprint(line)
		endString += sortStyle.Sprintf("%-*s  ", sortWidth, s.Sort)
		endString += exprStyle.Sprintf("%s\n", s.Expr)
	}
	return endString
}

func exprList(exprs []string, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)
	for _, e := range exprs {
		endString += lineStyle.Sprintf("%s= ", padding)
		endString += exprStyle.Sprintf("%s\n", e)
	}
	return endString
}

func summary(padding, format string, args ...any) string {
	return lineStyle.Sprintf("%s= ", padding) + summaryStyle.Sprintf(format+"\n", args...)
}

func failure(padding, message string) string {
	return lineStyle.Sprintf("%s= ", padding) + errorStyle.Sprintf("%s\n", message)
}

func calculateMaxIndexWidth(n int) int {
	if n <= 1 {
		return 1
	}
	return len(fmt.Sprintf("%d", n-1))
}
