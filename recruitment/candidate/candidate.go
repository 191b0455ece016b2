package candidate

import (
	"time"

	"github.com/Abraxas-365/seeker/pkg/kernel"
)

// Candidate is the persisted job-seeker profile, one per user
type Candidate struct {
	ID     kernel.CandidateID `db:"id" json:"id"`
	UserID kernel.UserID      `db:"user_id" json:"user_id"`

	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`

	TenthBoard       string `db:"tenth_board" json:"tenth_board"`
	TenthState       string `db:"tenth_state" json:"tenth_state"`
	TenthCity        string `db:"tenth_city" json:"tenth_city"`
	TenthInstitution string `db:"tenth_institution" json:"tenth_institution"`
	TenthYear        string `db:"tenth_year" json:"tenth_year"`

	IntermediateBoard       string `db:"intermediate_board" json:"intermediate_board"`
	IntermediateState       string `db:"intermediate_state" json:"intermediate_state"`
	IntermediateCity        string `db:"intermediate_city" json:"intermediate_city"`
	IntermediateInstitution string `db:"intermediate_institution" json:"intermediate_institution"`
	IntermediateYear        string `db:"intermediate_year" json:"intermediate_year"`

	GraduationDegree      string `db:"graduation_degree" json:"graduation_degree"`
	GraduationState       string `db:"graduation_state" json:"graduation_state"`
	GraduationCity        string `db:"graduation_city" json:"graduation_city"`
	GraduationInstitution string `db:"graduation_institution" json:"graduation_institution"`
	GraduationYear        string `db:"graduation_year" json:"graduation_year"`

	Company          string `db:"company" json:"company"`
	JobTitle         string `db:"job_title" json:"job_title"`
	Duration         string `db:"duration" json:"duration"`
	Responsibilities string `db:"responsibilities" json:"responsibilities"`
	ExperienceYears  string `db:"experience_years" json:"experience_years"`

	CurrentLocation   string `db:"current_location" json:"current_location"`
	PreferredLocation string `db:"preferred_location" json:"preferred_location"`

	// Resume file metadata; the bytes live in object storage
	ResumeURL         kernel.BucketURL `db:"resume_url" json:"resume"`
	ResumePath        string           `db:"resume_path" json:"-"`
	ResumeFileName    string           `db:"resume_file_name" json:"resume_file_name,omitempty"`
	ResumeContentType string           `db:"resume_content_type" json:"resume_content_type,omitempty"`
	ResumeText        string           `db:"resume_text" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// field maps a schema name onto the struct. Returns nil for the attachment and
// unknown names.
func (c *Candidate) field(name FieldName) *string {
	switch name {
	case FieldFullName:
		return &c.Name
	case FieldEmail:
		return &c.Email
	case FieldPhone:
		return &c.Phone
	case FieldTenthBoard:
		return &c.TenthBoard
	case FieldTenthState:
		return &c.TenthState
	case FieldTenthCity:
		return &c.TenthCity
	case FieldTenthInstitution:
		return &c.TenthInstitution
	case FieldTenthYear:
		return &c.TenthYear
	case FieldIntermediateBoard:
		return &c.IntermediateBoard
	case FieldIntermediateState:
		return &c.IntermediateState
	case FieldIntermediateCity:
		return &c.IntermediateCity
	case FieldIntermediateInstitution:
		return &c.IntermediateInstitution
	case FieldIntermediateYear:
		return &c.IntermediateYear
	case FieldGraduationDegree:
		return &c.GraduationDegree
	case FieldGraduationState:
		return &c.GraduationState
	case FieldGraduationCity:
		return &c.GraduationCity
	case FieldGraduationInstitution:
		return &c.GraduationInstitution
	case FieldGraduationYear:
		return &c.GraduationYear
	case FieldCompany:
		return &c.Company
	case FieldJobTitle:
		return &c.JobTitle
	case FieldDuration:
		return &c.Duration
	case FieldResponsibilities:
		return &c.Responsibilities
	case FieldExperienceYears:
		return &c.ExperienceYears
	case FieldCurrentLocation:
		return &c.CurrentLocation
	case FieldPreferredLocation:
		return &c.PreferredLocation
	default:
		return nil
	}
}

// Value returns the text value of a schema field
func (c *Candidate) Value(name FieldName) string {
	if p := c.field(name); p != nil {
		return *p
	}
	return ""
}

// ApplyValues overwrites every text field with values; missing keys become ""
func (c *Candidate) ApplyValues(values map[FieldName]string) {
	for _, spec := range TextFields() {
		if p := c.field(spec.Name); p != nil {
			*p = values[spec.Name]
		}
	}
	c.UpdatedAt = time.Now()
}

// FormRecord returns the candidate as editable form values, without attachment
func (c *Candidate) FormRecord() FormRecord {
	rec := NewFormRecord()
	for _, spec := range TextFields() {
		rec.values[spec.Name] = c.Value(spec.Name)
	}
	return rec
}

// HasResume reports whether a resume file has been stored
func (c *Candidate) HasResume() bool {
	return !c.ResumeURL.IsEmpty()
}

// AttachResume records where the uploaded resume was stored
func (c *Candidate) AttachResume(path string, url kernel.BucketURL, att *Attachment) {
	c.ResumePath = path
	c.ResumeURL = url
	c.ResumeFileName = att.FileName
	c.ResumeContentType = att.ContentType
	c.ResumeText = ""
	c.UpdatedAt = time.Now()
}
