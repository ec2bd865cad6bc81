package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificatePDF renders a completion certificate for a student and course.
type CertificatePDF struct{}

// NewCertificatePDF constructs a certificate renderer.
func NewCertificatePDF() *CertificatePDF {
	return &CertificatePDF{}
}

// Render produces the certificate document as PDF bytes.
func (e *CertificatePDF) Render(studentName, courseTitle string, issuedAt time.Time) ([]byte, error) {
	if studentName == "" || courseTitle == "" {
		return nil, fmt.Errorf("certificate requires student and course names")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 30, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 28)
	pdf.CellFormat(0, 18, "Certificate of Completion", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 14, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 10, "has completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, courseTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 12)
	pdf.CellFormat(0, 8, "Issued "+issuedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
