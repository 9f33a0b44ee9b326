package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

// PayslipAttachment memilih PDF caller kalau ada; kalau tidak, merakit
// PDF sederhana dari isi pesan. Filename kosong diganti default.
func PayslipAttachment(messageBody, pdfBase64, filename string) (Attachment, error) {
	if pdfBase64 == "" {
		pdf, err := buildSimplePayslipPDF(strings.Split(messageBody, "\n"))
		if err != nil {
			return Attachment{}, err
		}
		pdfBase64 = base64.StdEncoding.EncodeToString(pdf)
	}
	if filename == "" {
		filename = "payslip.pdf"
	}
	return Attachment{Filename: filename, Content: pdfBase64}, nil
}

// PayslipHTML membungkus isi pesan polos jadi body HTML.
func PayslipHTML(messageBody string) string {
	return fmt.Sprintf("<p>%s</p>", strings.ReplaceAll(messageBody, "\n", "<br>"))
}

// buildSimplePayslipPDF merakit PDF satu halaman tanpa library,
// satu baris teks per entri. Dipakai sebagai fallback saat caller
// tidak menyertakan PDF sendiri.
func buildSimplePayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
