package candidate

// SchemaVersion is the version of the field set exchanged with the backend.
// Bump it whenever a field is added, renamed or changes kind.
const SchemaVersion = 1

// FieldName is the wire name of a form field
type FieldName string

const (
	FieldFullName FieldName = "name"
	FieldEmail    FieldName = "email"
	FieldPhone    FieldName = "phone"

	FieldTenthBoard       FieldName = "tenth_board"
	FieldTenthState       FieldName = "tenth_state"
	FieldTenthCity        FieldName = "tenth_city"
	FieldTenthInstitution FieldName = "tenth_institution"
	FieldTenthYear        FieldName = "tenth_year"

	FieldIntermediateBoard       FieldName = "intermediate_board"
	FieldIntermediateState       FieldName = "intermediate_state"
	FieldIntermediateCity        FieldName = "intermediate_city"
	FieldIntermediateInstitution FieldName = "intermediate_institution"
	FieldIntermediateYear        FieldName = "intermediate_year"

	FieldGraduationDegree      FieldName = "graduation_degree"
	FieldGraduationState       FieldName = "graduation_state"
	FieldGraduationCity        FieldName = "graduation_city"
	FieldGraduationInstitution FieldName = "graduation_institution"
	FieldGraduationYear        FieldName = "graduation_year"

	FieldCompany          FieldName = "company"
	FieldJobTitle         FieldName = "job_title"
	FieldDuration         FieldName = "duration"
	FieldResponsibilities FieldName = "responsibilities"
	FieldExperienceYears  FieldName = "experience_years"

	FieldCurrentLocation   FieldName = "current_location"
	FieldPreferredLocation FieldName = "preferred_location"

	FieldResume FieldName = "resume"
)

func (f FieldName) String() string { return string(f) }

// FieldKind tells text values apart from the binary attachment
type FieldKind int

const (
	KindText FieldKind = iota
	KindMultiline
	KindRegion
	KindLocality
	KindFile
)

// FieldSpec describes one field of the schema
type FieldSpec struct {
	Name  FieldName
	Label string
	Step  Step
	Kind  FieldKind
	// RegionField is the state field a locality field depends on
	RegionField FieldName
}

// IsText reports whether the field holds a string value
func (s FieldSpec) IsText() bool { return s.Kind != KindFile }

// Schema lists every FormRecord field in display order
var Schema = []FieldSpec{
	{Name: FieldFullName, Label: "Full name", Step: StepPersonal},
	{Name: FieldEmail, Label: "Email", Step: StepPersonal},
	{Name: FieldPhone, Label: "Phone", Step: StepPersonal},

	{Name: FieldTenthBoard, Label: "10th board", Step: StepEducation},
	{Name: FieldTenthState, Label: "10th state", Step: StepEducation, Kind: KindRegion},
	{Name: FieldTenthCity, Label: "10th city", Step: StepEducation, Kind: KindLocality, RegionField: FieldTenthState},
	{Name: FieldTenthInstitution, Label: "10th school", Step: StepEducation},
	{Name: FieldTenthYear, Label: "10th passing year", Step: StepEducation},

	{Name: FieldIntermediateBoard, Label: "Intermediate board", Step: StepEducation},
	{Name: FieldIntermediateState, Label: "Intermediate state", Step: StepEducation, Kind: KindRegion},
	{Name: FieldIntermediateCity, Label: "Intermediate city", Step: StepEducation, Kind: KindLocality, RegionField: FieldIntermediateState},
	{Name: FieldIntermediateInstitution, Label: "Intermediate college", Step: StepEducation},
	{Name: FieldIntermediateYear, Label: "Intermediate passing year", Step: StepEducation},

	{Name: FieldGraduationDegree, Label: "Graduation degree", Step: StepEducation},
	{Name: FieldGraduationState, Label: "Graduation state", Step: StepEducation, Kind: KindRegion},
	{Name: FieldGraduationCity, Label: "Graduation city", Step: StepEducation, Kind: KindLocality, RegionField: FieldGraduationState},
	{Name: FieldGraduationInstitution, Label: "Graduation university", Step: StepEducation},
	{Name: FieldGraduationYear, Label: "Graduation year", Step: StepEducation},

	{Name: FieldCompany, Label: "Company", Step: StepExperience},
	{Name: FieldJobTitle, Label: "Job title", Step: StepExperience},
	{Name: FieldDuration, Label: "Duration", Step: StepExperience},
	{Name: FieldResponsibilities, Label: "Responsibilities", Step: StepExperience, Kind: KindMultiline},
	{Name: FieldExperienceYears, Label: "Years of experience", Step: StepExperience},

	{Name: FieldCurrentLocation, Label: "Current location", Step: StepLocation},
	{Name: FieldPreferredLocation, Label: "Preferred location", Step: StepLocation},

	{Name: FieldResume, Label: "Resume", Step: StepResume, Kind: KindFile},
}

var schemaIndex = func() map[FieldName]FieldSpec {
	idx := make(map[FieldName]FieldSpec, len(Schema))
	for _, spec := range Schema {
		idx[spec.Name] = spec
	}
	return idx
}()

// LookupField returns the spec for name
func LookupField(name FieldName) (FieldSpec, bool) {
	spec, ok := schemaIndex[name]
	return spec, ok
}

// FieldsForStep returns the fields shown on step, in display order
func FieldsForStep(step Step) []FieldSpec {
	var out []FieldSpec
	for _, spec := range Schema {
		if spec.Step == step {
			out = append(out, spec)
		}
	}
	return out
}

// TextFields returns every non-file field in display order
func TextFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(Schema)-1)
	for _, spec := range Schema {
		if spec.IsText() {
			out = append(out, spec)
		}
	}
	return out
}
