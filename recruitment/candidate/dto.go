package candidate

import (
	"path/filepath"
	"strings"
)

// SaveResult is what the backend returns after an upsert
type SaveResult struct {
	Candidate *Candidate
	Created   bool
}

// Resume content types
const (
	ResumeTypePDF  = "application/pdf"
	ResumeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ResumeTypeText = "text/plain"
)

var resumeExtensions = map[string]string{
	".pdf":  ResumeTypePDF,
	".docx": ResumeTypeDOCX,
	".txt":  ResumeTypeText,
}

// NormalizeResumeType resolves an attachment's format from its declared
// content type, falling back to the file extension. Unknown formats come back
// as the bare declared type.
func NormalizeResumeType(contentType, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case ResumeTypePDF, ResumeTypeDOCX, ResumeTypeText:
		return ct
	}
	if byExt, ok := resumeExtensions[strings.ToLower(filepath.Ext(fileName))]; ok {
		return byExt
	}
	return ct
}

// IsAllowedResumeType reports whether the normalized type is accepted
func IsAllowedResumeType(contentType string) bool {
	switch contentType {
	case ResumeTypePDF, ResumeTypeDOCX, ResumeTypeText:
		return true
	}
	return false
}
