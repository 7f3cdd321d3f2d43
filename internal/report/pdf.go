// Package report renders patient health reports as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders A4 health reports from a user's profile and diagnosis
// history.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report and returns the PDF bytes.
func (g *Generator) Generate(user *models.User, diagnoses []models.Diagnosis) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("CureVox Health Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "CureVox Health Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("02 Jan 2006 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	g.writeProfile(pdf, user)
	g.writeDiagnoses(pdf, diagnoses)
	g.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeProfile(pdf *gofpdf.Fpdf, user *models.User) {
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Patient Profile", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
		{"Phone", user.PhoneNumber},
		{"Gender", user.Gender},
		{"Blood Group", user.BloodGroup},
	}
	if user.DateOfBirth != nil {
		rows = append(rows, [2]string{"Date of Birth", user.DateOfBirth.Format("02 Jan 2006")})
	}
	if user.Height > 0 {
		rows = append(rows, [2]string{"Height", fmt.Sprintf("%.1f cm", user.Height)})
	}
	if user.Weight > 0 {
		rows = append(rows, [2]string{"Weight", fmt.Sprintf("%.1f kg", user.Weight)})
	}
	if user.Allergies != "" {
		rows = append(rows, [2]string{"Allergies", user.Allergies})
	}
	if user.ChronicConditions != "" {
		rows = append(rows, [2]string{"Chronic Conditions", user.ChronicConditions})
	}
	if user.CurrentMedications != "" {
		rows = append(rows, [2]string{"Current Medications", user.CurrentMedications})
	}

	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, row[1], "", "L", false)
	}
	pdf.Ln(4)
}

func (g *Generator) writeDiagnoses(pdf *gofpdf.Fpdf, diagnoses []models.Diagnosis) {
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Diagnosis History", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(diagnoses) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 7, "No diagnoses recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		return
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(28, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(62, 7, "Title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(22, 7, "Severity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, "Confidence", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 7, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, d := range diagnoses {
		pdf.CellFormat(28, 7, d.CreatedAt.Format("02 Jan 2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, string(d.DiagnosisType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(62, 7, truncate(d.Title, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 7, string(d.Severity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, fmt.Sprintf("%.1f%%", d.ConfidenceScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, string(d.Status), "1", 1, "L", false, 0, "")

		if d.DoctorNote != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.MultiCell(0, 5, "Doctor's note: "+d.DoctorNote, "1", "L", false)
			pdf.SetFont("Arial", "", 9)
		}
	}
	pdf.Ln(4)
}

func (g *Generator) writeFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5,
		"This report is generated from automated self-assessments and is not a "+
			"medical diagnosis. Consult a licensed physician before acting on it.",
		"", "L", false)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
