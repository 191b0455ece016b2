package candidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

// MaxResumeSize is the largest attachment accepted, in bytes
const MaxResumeSize = 10 * 1024 * 1024

// Attachment is a resume file picked locally and not yet uploaded
type Attachment struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// IsEmpty reports a nil or zero-length attachment
func (a *Attachment) IsEmpty() bool {
	return a == nil || len(a.Data) == 0
}

// Size returns the attachment length in bytes
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// FormRecord is the in-progress, editable candidate profile
type FormRecord struct {
	values map[FieldName]string
	Resume *Attachment
}

// NewFormRecord returns a record with every text field set to ""
func NewFormRecord() FormRecord {
	values := make(map[FieldName]string, len(Schema))
	for _, spec := range TextFields() {
		values[spec.Name] = ""
	}
	return FormRecord{values: values}
}

// Get returns the value of a text field, "" when unset or unknown
func (r FormRecord) Get(name FieldName) string {
	return r.values[name]
}

// Set overwrites a text field. The attachment goes through SetResume.
func (r *FormRecord) Set(name FieldName, value string) error {
	spec, ok := LookupField(name)
	if !ok || !spec.IsText() {
		return ErrInvalidField().WithDetail("field", string(name))
	}
	if r.values == nil {
		*r = NewFormRecord()
	}
	r.values[name] = value
	return nil
}

// Values returns a copy of every text field
func (r FormRecord) Values() map[FieldName]string {
	out := make(map[FieldName]string, len(r.values))
	for _, spec := range TextFields() {
		out[spec.Name] = r.values[spec.Name]
	}
	return out
}

// Clone returns a deep copy
func (r FormRecord) Clone() FormRecord {
	out := FormRecord{values: r.Values()}
	if r.Resume != nil {
		att := *r.Resume
		att.Data = append([]byte(nil), r.Resume.Data...)
		out.Resume = &att
	}
	return out
}

// Record is a candidate as decoded from backend JSON, before normalization.
// Values may be null, numbers or missing altogether.
type Record map[string]any

// DecodeRecord parses a JSON object into a Record, keeping numbers exact
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode candidate record: %w", err)
	}
	return rec, nil
}

// Text returns the normalized string value for name
func (r Record) Text(name FieldName) string {
	return Stringify(r[string(name)])
}

// ID returns the persisted candidate id, empty when never saved
func (r Record) ID() kernel.CandidateID {
	return kernel.CandidateID(Stringify(r["id"]))
}

// UserID returns the owning user id
func (r Record) UserID() kernel.UserID {
	return kernel.UserID(Stringify(r["user_id"]))
}

// ResumeURL returns the location of the resume already on file
func (r Record) ResumeURL() string {
	return Stringify(r[string(FieldResume)])
}

// HasResume reports whether the backend already holds a resume
func (r Record) HasResume() bool {
	return r.ResumeURL() != ""
}

// Stringify coerces a decoded JSON value into the string a form field holds.
// nil becomes "", numbers keep their shortest exact form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}
