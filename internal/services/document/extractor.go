// Package document extracts plain text from uploaded filings
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
)

// Extractor implements DocumentExtractor for PDF documents.
type Extractor struct {
	logger *common.Logger
}

// NewExtractor creates a new PDF text extractor.
func NewExtractor(logger *common.Logger) *Extractor {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Extractor{logger: logger}
}

// ExtractText extracts the full plain text of a PDF. Pages that fail to
// decode are skipped; the document as a whole only fails when it cannot be
// opened at all.
//
// The pdf package panics on some malformed inputs, so the whole pass runs
// under a recover that converts the panic into an error.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug().Int("page", i).Err(err).Msg("Skipping unreadable PDF page")
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := sb.String()
	e.logger.Debug().Int("pages", totalPages).Int("chars", len(result)).Msg("Extracted PDF text")

	return result, nil
}

// Ensure Extractor implements DocumentExtractor
var _ interfaces.DocumentExtractor = (*Extractor)(nil)
