package scan

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFReader extracts the text layer of airline boarding-pass PDFs so the
// embedded barcode payload can be decoded. No image handling: a PDF whose
// payload exists only as a rendered PDF417 symbol yields no candidates.
type PDFReader struct {
	maxFileSize int64
	maxTextSize int
}

// NewPDFReader creates a PDF reader with the specified size constraint.
func NewPDFReader(maxFileSize int64) *PDFReader {
	return &PDFReader{
		maxFileSize: maxFileSize,
		maxTextSize: 1024 * 1024, // boarding-pass text layers are tiny
	}
}

// ExtractText validates a PDF and returns its text content, one extracted
// row per line so payload lines keep their boundaries.
func (r *PDFReader) ExtractText(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !IsPDFFile(path) {
		return "", fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > r.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	if err := r.validatePDF(path); err != nil {
		return "", fmt.Errorf("invalid PDF file: %w", err)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.extractRows(pdfReader)
}

// validatePDF checks structural integrity with pdfcpu in relaxed mode, which
// tolerates the slightly off-spec files airline generators tend to emit.
func (r *PDFReader) validatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return err
	}

	return api.ValidateContext(ctx)
}

// extractRows walks every page and rebuilds text row by row. Plain-text
// extraction would run positioned fragments together and destroy the line
// boundaries the candidate filter depends on.
func (r *PDFReader) extractRows(pdfReader *pdf.Reader) (string, error) {
	var b strings.Builder

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// A single malformed page should not sink the whole file.
			continue
		}

		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if b.Len()+line.Len() > r.maxTextSize {
				return b.String(), nil
			}
			b.WriteString(line.String())
			b.WriteString("\n")
		}
	}

	text := b.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
