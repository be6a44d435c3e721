package ingestion

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// MinExtractedTextLength is the minimum text length required for a PDF
	// extraction to count as successful.
	MinExtractedTextLength = 50
	// BinarySampleSize is the number of bytes sampled for binary detection.
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that
	// indicates binary data.
	BinaryThreshold = 0.3
)

// ExtractText extracts plain text from a PDF, DOCX, DOC or TXT resume file.
func ExtractText(ctx context.Context, filePath string, raw []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".txt":
		if IsBinaryData(string(raw)) {
			return "", fmt.Errorf("file %s has a .txt extension but binary content", filePath)
		}
		return strings.TrimSpace(string(raw)), nil
	case ".pdf":
		return extractPDF(ctx, filePath)
	case ".doc":
		return extractDOC(ctx, filePath)
	case ".docx":
		return extractDOCX(raw, filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

// SupportedExtension reports whether the file extension is one we can parse.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".pdf", ".doc", ".docx":
		return true
	}
	return false
}

// extractPDF extracts text from a PDF using pdftotext.
func extractPDF(ctx context.Context, filePath string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", filePath, "-")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("PDF extraction requires 'pdftotext' (install poppler-utils): %w", err)
	}

	text := strings.TrimSpace(string(output))
	if len(text) < MinExtractedTextLength {
		return "", fmt.Errorf("extracted text is too short (likely a scanned or image-only PDF): %s", filePath)
	}

	return text, nil
}

// extractDOC extracts text from a legacy .doc file using antiword.
func extractDOC(ctx context.Context, filePath string) (string, error) {
	cmd := exec.CommandContext(ctx, "antiword", filePath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("DOC extraction requires 'antiword': %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// extractDOCX extracts text from a .docx file. A docx is a zip archive whose
// body lives in word/document.xml; text nodes are concatenated with paragraph
// boundaries preserved as newlines.
func extractDOCX(raw []byte, filePath string) (string, error) {
	reader, err := zip.NewReader(strings.NewReader(string(raw)), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("failed to open %s as a docx archive: %w", filePath, err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to read document body of %s: %w", filePath, err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}

	return "", fmt.Errorf("no document body found in %s", filePath)
}

// parseDocumentXML pulls the text runs out of a WordprocessingML body.
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	var inText bool

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP markers or a
// high proportion of non-printable characters).
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	if strings.HasPrefix(content, "%PDF-") {
		return true
	}
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
