package formatter

type InvariantFormatter struct{}

func (f *InvariantFormatter) ReportTemplate() string {
	return `{{header .Kind .Source .Shape .IndexWidth -}}
{{slots .Slots .IndexWidth .PathWidth .SortWidth .Padding -}}
{{exprs .Exprs .Padding -}}
{{summary .Padding "%d invariants over %d leaves" (len .Exprs) (len .Slots)}}
`
}
