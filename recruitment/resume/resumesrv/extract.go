package resumesrv

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/resume"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTags    = regexp.MustCompile(`<[^>]+>`)
	blankRuns  = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRun = regexp.MustCompile(`\n\s*\n+`)
)

// ExtractText pulls plain text out of a resume file
func ExtractText(contentType, fileName string, data []byte) (string, error) {
	kind := candidate.NormalizeResumeType(contentType, fileName)
	var (
		text string
		err  error
	)
	switch kind {
	case candidate.ResumeTypeText:
		if !utf8.Valid(data) {
			return "", resume.ErrExtractionFailed().WithDetail("reason", "text file is not valid UTF-8")
		}
		text = string(data)
	case candidate.ResumeTypePDF:
		text, err = extractPDF(data)
	case candidate.ResumeTypeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", resume.ErrUnsupportedType().WithDetail("content_type", contentType).WithDetail("file_name", fileName)
	}
	if err != nil {
		return "", resume.ErrExtractionFailed().WithCause(err).WithDetail("content_type", kind)
	}
	return normalizeWhitespace(text), nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	return xmlTags.ReplaceAllString(content, " "), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blankRuns.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = newlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
