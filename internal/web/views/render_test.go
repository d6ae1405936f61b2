package views

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rmitchellscott/WxCraft/internal/metar"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if pageTmpl == nil {
		t.Fatal("LoadTemplates() left pageTmpl nil")
	}
	for _, name := range []string{"form.html", "report.html", "error.html", "header", "footer", "station-form"} {
		if pageTmpl.Lookup(name) == nil {
			t.Errorf("template %q not defined", name)
		}
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no "templates" directory; fs.Sub fails.
	err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	if err == nil {
		t.Fatal(`loadTemplatesFromFS(emptyFS, "templates") = nil; want error`)
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/form.html":            {Data: []byte("{{ .")},
		"templates/partials/header.html": {Data: []byte(`{{define "header"}}{{end}}`)},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal(`loadTemplatesFromFS(badFS, "templates") = nil; want error`)
	}
}

func TestRender_notLoaded(t *testing.T) {
	prev := pageTmpl
	pageTmpl = nil
	t.Cleanup(func() { pageTmpl = prev })

	var buf bytes.Buffer
	err := RenderForm(&buf, &FormData{})
	if err == nil {
		t.Fatal("RenderForm() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderForm(t *testing.T) {
	mustLoad(t)

	var buf bytes.Buffer
	if err := RenderForm(&buf, &FormData{Station: "12", Error: `invalid station code "12": wrong length`}); err != nil {
		t.Fatalf("RenderForm() = %v; want nil", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"WxCraft METAR",
		`name="station"`,
		`value="12"`,
		"wrong length",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got %q", want, out)
		}
	}
}

func TestRenderForm_escapesInput(t *testing.T) {
	mustLoad(t)

	var buf bytes.Buffer
	if err := RenderForm(&buf, &FormData{Station: `"><script>`}); err != nil {
		t.Fatalf("RenderForm() = %v; want nil", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Errorf("station value not escaped; got %q", buf.String())
	}
}

func TestRenderReport(t *testing.T) {
	mustLoad(t)

	report := metar.Report{
		Raw:          "KJFK 121851Z 18012G20KT 10SM FEW035 28/19 A3002 ZZZ",
		Station:      "KJFK",
		Observed:     time.Date(2026, 10, 12, 18, 51, 0, 0, time.UTC),
		Wind:         "wind from 180° at 12 knots, gusting to 20 knots",
		Visibility:   "visibility 10 statute miles",
		Sky:          []string{"few clouds at 3500 feet"},
		Temperature:  "temperature 28°C, dewpoint 19°C",
		Pressure:     "altimeter 30.02 inHg",
		Unrecognized: []string{"ZZZ"},
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, NewReportData("KJFK", report)); err != nil {
		t.Fatalf("RenderReport() = %v; want nil", err)
	}
	out := buf.String()
	for _, want := range []string{
		"KJFK 121851Z 18012G20KT",
		"12 Oct 18:51 UTC",
		"<dt>Wind</dt>",
		"gusting to 20 knots",
		"<dt>Sky condition</dt>",
		"few clouds at 3500 feet",
		"altimeter 30.02 inHg",
		"<code>ZZZ</code>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got %q", want, out)
		}
	}
	if strings.Contains(out, "Weather phenomena") {
		t.Errorf("absent field rendered; got %q", out)
	}
}

func TestRenderReport_noFields(t *testing.T) {
	mustLoad(t)

	report := metar.Decode("KXXX 011951Z NOSIG")

	var buf bytes.Buffer
	if err := RenderReport(&buf, NewReportData("KXXX", report)); err != nil {
		t.Fatalf("RenderReport() = %v; want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, "KXXX 011951Z NOSIG") {
		t.Errorf("raw report missing; got %q", out)
	}
	if !strings.Contains(out, "No fields could be decoded") {
		t.Errorf("empty breakdown message missing; got %q", out)
	}
}

func TestRenderError(t *testing.T) {
	mustLoad(t)

	var buf bytes.Buffer
	err := RenderError(&buf, &ErrorData{Station: "ZZZZ", Message: "No data for this station. It may be offline or invalid."})
	if err != nil {
		t.Fatalf("RenderError() = %v; want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No data for this station") {
		t.Errorf("message missing; got %q", out)
	}
	if !strings.Contains(out, `value="ZZZZ"`) {
		t.Errorf("form not prefilled; got %q", out)
	}
}

// Ensure RenderReport propagates write errors (e.g. closed writer).
func TestRenderReport_writeError(t *testing.T) {
	mustLoad(t)

	w := &failingWriter{err: io.ErrClosedPipe}
	err := RenderReport(w, &ReportData{Station: "KJFK"})
	if err != io.ErrClosedPipe {
		t.Errorf("RenderReport() = %v; want %v", err, io.ErrClosedPipe)
	}
}

func mustLoad(t *testing.T) {
	t.Helper()
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}
}

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }
