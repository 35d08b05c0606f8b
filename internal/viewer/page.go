package viewer

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// Page is the data rendered into the HTML viewer.
type Page struct {
	Title   string
	Markup  string
	JobInfo map[string]JobInfo
}

// WritePage renders the viewer page to w.
func WritePage(w io.Writer, page Page) error {
	if page.JobInfo == nil {
		page.JobInfo = map[string]JobInfo{}
	}
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render viewer page: %w", err)
	}
	return nil
}
