package knowledge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

type Kind string

const (
	KindPDF     Kind = "pdf"
	KindWord    Kind = "word"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

// Classify decides the extractor from the response content type and the
// lower-cased URL path. PDF wins over Word, Word over text. When neither
// says anything useful the leading bytes are sniffed.
func Classify(contentType, lowerPath string, head []byte) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf") || strings.HasSuffix(lowerPath, ".pdf"):
		return KindPDF
	case strings.Contains(ct, "wordprocessingml") || strings.Contains(ct, "msword") ||
		strings.HasSuffix(lowerPath, ".docx") || strings.HasSuffix(lowerPath, ".doc"):
		return KindWord
	case strings.Contains(ct, "text") || strings.HasSuffix(lowerPath, ".txt"):
		return KindText
	}
	if ct == "" || strings.Contains(ct, "octet-stream") {
		switch {
		case isPDF(head):
			return KindPDF
		case isZip(head) && hasZipEntry(head, "word/document.xml"):
			return KindWord
		}
	}
	return KindUnknown
}

// Extract returns the plain text of data for the given kind. Unknown kinds
// have no text and no error.
func Extract(kind Kind, data []byte) (string, error) {
	switch kind {
	case KindPDF:
		return extractPDF(data)
	case KindWord:
		return extractDOCX(data)
	case KindText:
		return strings.TrimSpace(strings.ToValidUTF8(string(data), "�")), nil
	default:
		return "", nil
	}
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func hasZipEntry(data []byte, name string) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	return findZipFile(zr, name) != nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// extractDOCX walks word/document.xml keeping run text and paragraph breaks.
// Legacy binary .doc files are not zip containers and fail here.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx container: %w", err)
	}
	f := findZipFile(zr, "word/document.xml")
	if f == nil {
		return "", errors.New("docx: missing word/document.xml")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var v string
				if err := dec.DecodeElement(&v, &el); err != nil {
					return "", fmt.Errorf("docx text run: %w", err)
				}
				out.WriteString(v)
			case "tab":
				out.WriteString("\t")
			case "br", "cr":
				out.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				out.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
