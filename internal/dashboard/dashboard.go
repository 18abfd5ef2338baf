// Package dashboard renders the HTML page that embeds the report charts.
package dashboard

import (
	"html/template"
	"io"
	"net/url"

	"fleet-service/internal/model"
)

type Chart struct {
	Alt string
	Src string
}

type Section struct {
	Heading string
	Charts  []Chart
}

type Page struct {
	From     string
	To       string
	Sections []Section
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>Fleet Dashboard</title>
</head>
<body>
<h1>Fleet Dashboard</h1>
<p>Optional date filter (YYYY-MM-DD). Leave both empty to include every record.</p>
<form method="get" action="/dashboard">
From: <input name="from" value="{{.From}}" placeholder="YYYY-MM-DD"/>
To: <input name="to" value="{{.To}}" placeholder="YYYY-MM-DD"/>
<button type="submit">Apply</button>
</form>
<hr/>
{{range .Sections}}<h2>{{.Heading}}</h2>
{{range .Charts}}<div><img alt="{{.Alt}}" src="{{.Src}}"/></div>
{{end}}{{end}}</body>
</html>
`))

// NewPage builds the page model for the raw from/to query values. The form
// is prefilled with valid dates only. The chart links carry the filter only
// when at least one bound is a valid date.
func NewPage(from, to string) Page {
	page := Page{}
	if model.IsDate(from) {
		page.From = from[:10]
	}
	if model.IsDate(to) {
		page.To = to[:10]
	}

	query := ""
	if model.IsDate(from) || model.IsDate(to) {
		query = "?from=" + url.QueryEscape(truncate(from, 10)) + "&to=" + url.QueryEscape(truncate(to, 10))
	}

	src := func(report model.Report) string {
		return "/charts/" + report.Name + ".svg" + query
	}

	page.Sections = []Section{
		{Heading: "Fuel", Charts: []Chart{
			{Alt: "fuel liters", Src: src(model.ReportFuelLitersByTruck)},
			{Alt: "fuel cost", Src: src(model.ReportFuelCostByTruck)},
		}},
		{Heading: "Kilometers", Charts: []Chart{
			{Alt: "km", Src: src(model.ReportKmByTruck)},
		}},
		{Heading: "Payments", Charts: []Chart{
			{Alt: "pay", Src: src(model.ReportPayByDriver)},
		}},
	}
	return page
}

func Compose(w io.Writer, from, to string) error {
	return pageTemplate.Execute(w, NewPage(from, to))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
