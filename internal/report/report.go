// Package report renders an assessment as a one-document PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// Title is the heading printed on every report.
const Title = "Mental Health Assessment Report"

// Report is the content of one PDF.
type Report struct {
	Name            string
	Email           string
	Prediction      string
	Recommendations string
	// Reflection is optional.
	Reflection string
	CreatedAt  time.Time
}

// Render writes the report as PDF to w.
func Render(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(Title, true)
	pdf.SetAuthor("mindcheck", true)
	if !r.CreatedAt.IsZero() {
		pdf.SetCreationDate(r.CreatedAt)
		pdf.SetModificationDate(r.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, tr("Name: "+r.Name), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, tr("Email: "+r.Email), "", 1, "", false, 0, "")
	if !r.CreatedAt.IsZero() {
		pdf.CellFormat(0, 10, "Date: "+r.CreatedAt.Format("2006-01-02 15:04"), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	section(pdf, tr, "Prediction Result:", r.Prediction)
	pdf.Ln(5)
	section(pdf, tr, "Recommendations:", r.Recommendations)
	if strings.TrimSpace(r.Reflection) != "" {
		pdf.Ln(5)
		section(pdf, tr, "Reflection:", r.Reflection)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, heading, "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, tr(body), "", "", false)
}

// Bytes renders the report into memory.
func Bytes(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the download name for a report, with characters that
// are unsafe in paths replaced by underscores.
func FileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "._")
	if name == "" {
		name = "Anonymous"
	}
	return name + "_Mental_Health_Report.pdf"
}
