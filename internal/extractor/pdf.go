// Package extractor pulls text out of rate-confirmation PDFs so trip fields
// can be parsed from documents as well as chat messages.
package extractor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a digitally generated PDF and returns the text content
// of each page. Scanned or image-only documents are rejected rather than
// decoded into garbage.
func ExtractText(filePath string) ([]string, error) {
	pages, err := extractWithLibrary(filePath)
	if err != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v. The file may be image-based or scanned", err)
	}
	if !isReadableText(pages) {
		return nil, fmt.Errorf("no readable text could be extracted; the PDF may be image-based or use font encodings that cannot be decoded")
	}
	return pages, nil
}

// extractWithLibrary walks each page row by row. The pdf library panics on
// some malformed files, so the recover turns that into an error.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}

// commonWords that appear in virtually all rate confirmations. If the
// extracted text contains none of these, it is likely garbage.
var commonWords = []string{
	"rate", "trip", "load", "miles", "pickup", "delivery",
	"carrier", "broker", "driver", "total", "pu", "mi",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of plain readable characters to total
// characters, 0.0-1.0. Strict ASCII on purpose: identity-encoded fonts
// decode into accented garbage that unicode.IsLetter would accept.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*`, r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// isReadableText requires enough text, mostly readable characters, and at
// least one recognizable word.
func isReadableText(pages []string) bool {
	totalLen := 0
	for _, p := range pages {
		totalLen += len(p)
	}
	if totalLen <= 20 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}
