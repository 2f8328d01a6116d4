package services

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFParserService sanity-checks uploaded PDF case documents by opening
// them and counting pages; a corrupt file fails here instead of when a
// lawyer later opens it.
type PDFParserService interface {
	PageCount(filePath string) (int, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) PageCount(filePath string) (int, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages == 0 {
		return 0, fmt.Errorf("PDF has no pages")
	}

	return pages, nil
}
