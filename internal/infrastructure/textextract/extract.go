// Package textextract pulls plain text out of uploaded resume files.
// The output is raw extraction; normalization happens in the matching
// engine so that text from every source goes through the same pipeline.
package textextract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Extract returns the plain text of an uploaded resume, dispatching on the
// file extension. Supported formats: .pdf, .docx, .txt, .md.
func Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return fromPDF(data)
	case ".docx":
		return fromDocx(data)
	case ".txt", ".md":
		return fromPlain(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Supported reports whether Extract can handle the file.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt", ".md":
		return true
	}
	return false
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

// fromDocx reads word/document.xml out of the container, turns paragraph
// ends into newlines and tabs into tabs, then strips the remaining markup.
func fromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = readZipFile(f)
			if err != nil {
				return "", fmt.Errorf("read docx: %w", err)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errors.New("read docx: no word/document.xml in archive")
	}

	s := string(docXML)
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = tagRe.ReplaceAllString(s, " ")
	return html.UnescapeString(s), nil
}

func fromPlain(data []byte) string {
	return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
