package candidate

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

// Multipart keys that are not form fields
const (
	partSchemaVersion = "schema_version"
	partUserID        = "user_id"
	partCandidateID   = "id"
)

// Payload is the request body for both create and update. Both intents carry
// the exact same shape; only CandidateID differs.
type Payload struct {
	Version     int
	UserID      kernel.UserID
	CandidateID kernel.CandidateID
	Values      map[FieldName]string
	Resume      *Attachment
}

// NewPayload snapshots rec for userID. candidateID is empty for a create.
func NewPayload(rec FormRecord, userID kernel.UserID, candidateID kernel.CandidateID) Payload {
	snapshot := rec.Clone()
	return Payload{
		Version:     SchemaVersion,
		UserID:      userID,
		CandidateID: candidateID,
		Values:      snapshot.Values(),
		Resume:      snapshot.Resume,
	}
}

// Record rebuilds the form values carried by the payload
func (p Payload) Record() FormRecord {
	rec := NewFormRecord()
	for _, spec := range TextFields() {
		rec.values[spec.Name] = p.Values[spec.Name]
	}
	rec.Resume = p.Resume
	return rec
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the payload as multipart/form-data and returns the body and
// its content type. Every schema field is always present; an absent resume is
// sent as an empty string.
func (p Payload) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := w.WriteField(partSchemaVersion, strconv.Itoa(p.Version)); err != nil {
		return nil, "", fmt.Errorf("write schema version: %w", err)
	}
	if err := w.WriteField(partUserID, p.UserID.String()); err != nil {
		return nil, "", fmt.Errorf("write user id: %w", err)
	}
	if !p.CandidateID.IsEmpty() {
		if err := w.WriteField(partCandidateID, p.CandidateID.String()); err != nil {
			return nil, "", fmt.Errorf("write candidate id: %w", err)
		}
	}

	for _, spec := range TextFields() {
		if err := w.WriteField(string(spec.Name), p.Values[spec.Name]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", spec.Name, err)
		}
	}

	if p.Resume.IsEmpty() {
		if err := w.WriteField(string(FieldResume), ""); err != nil {
			return nil, "", fmt.Errorf("write empty resume: %w", err)
		}
	} else {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			FieldResume, quoteEscaper.Replace(p.Resume.FileName)))
		contentType := p.Resume.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create resume part: %w", err)
		}
		if _, err := part.Write(p.Resume.Data); err != nil {
			return nil, "", fmt.Errorf("write resume part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

// DecodePayload reads a parsed multipart form back into a Payload
func DecodePayload(form *multipart.Form) (Payload, error) {
	if form == nil {
		return Payload{}, ErrInvalidPayload().WithDetail("reason", "missing form")
	}

	first := func(key string) string {
		if vals := form.Value[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	version, err := strconv.Atoi(first(partSchemaVersion))
	if err != nil || version != SchemaVersion {
		return Payload{}, ErrUnsupportedSchema().
			WithDetail("schema_version", first(partSchemaVersion)).
			WithDetail("supported", SchemaVersion)
	}

	p := Payload{
		Version:     version,
		UserID:      kernel.UserID(strings.TrimSpace(first(partUserID))),
		CandidateID: kernel.CandidateID(strings.TrimSpace(first(partCandidateID))),
		Values:      make(map[FieldName]string, len(Schema)),
	}
	if p.UserID.IsEmpty() {
		return Payload{}, ErrInvalidPayload().WithDetail("reason", "user_id is required")
	}

	for _, spec := range TextFields() {
		p.Values[spec.Name] = first(string(spec.Name))
	}

	if files := form.File[string(FieldResume)]; len(files) > 0 {
		att, err := readAttachment(files[0])
		if err != nil {
			return Payload{}, err
		}
		p.Resume = att
	}

	return p, nil
}

func readAttachment(fh *multipart.FileHeader) (*Attachment, error) {
	if fh.Size > MaxResumeSize {
		return nil, ErrResumeTooLarge().
			WithDetail("size", fh.Size).
			WithDetail("max_size", MaxResumeSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, ErrInvalidPayload().WithCause(err).WithDetail("reason", "unreadable resume")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxResumeSize+1))
	if err != nil {
		return nil, ErrInvalidPayload().WithCause(err).WithDetail("reason", "unreadable resume")
	}
	if len(data) > MaxResumeSize {
		return nil, ErrResumeTooLarge().WithDetail("max_size", MaxResumeSize)
	}

	return &Attachment{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
