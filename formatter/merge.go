package formatter

type MergeFormatter struct{}

func (f *MergeFormatter) ReportTemplate() string {
	return `{{header .Kind .Source .Shape .IndexWidth -}}
{{- if .Merged -}}
{{slots .Slots .IndexWidth .PathWidth .SortWidth .Padding -}}
{{summary .Padding "merged: %d leaves, %d shared, %d ite" (len .Slots) .Shared .Ites}}
{{- else -}}
{{failure .Padding "incompatible shapes: states kept separate"}}
{{- end }}
`
}
