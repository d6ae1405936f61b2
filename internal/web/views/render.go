package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/rmitchellscott/WxCraft/internal/metar"
)

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pageTmpl, err = template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

var errNotLoaded = errors.New("page templates not loaded: call views.LoadTemplates during startup")

// FormData is the view model for the lookup form. Error holds the validation
// message shown inline under the field.
type FormData struct {
	Station string
	Error   string
}

// ReportData is the view model for a fetched and decoded report.
type ReportData struct {
	Station      string
	Raw          string
	Observed     time.Time
	Fields       []metar.Field
	Unrecognized []string
}

// NewReportData builds the report view model from a decoded report.
func NewReportData(code string, report metar.Report) *ReportData {
	return &ReportData{
		Station:      code,
		Raw:          report.Raw,
		Observed:     report.Observed,
		Fields:       report.Fields(),
		Unrecognized: report.Unrecognized,
	}
}

// ErrorData is the view model for a failed fetch.
type ErrorData struct {
	Station string
	Message string
}

func RenderForm(w io.Writer, data *FormData) error {
	return render(w, "form.html", data)
}

func RenderReport(w io.Writer, data *ReportData) error {
	return render(w, "report.html", data)
}

func RenderError(w io.Writer, data *ErrorData) error {
	return render(w, "error.html", data)
}

func render(w io.Writer, name string, data any) error {
	if pageTmpl == nil {
		return errNotLoaded
	}
	return pageTmpl.ExecuteTemplate(w, name, data)
}
