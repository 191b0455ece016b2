package candidate

import (
	"errors"
	"sort"
	"strings"

	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a field to the message shown next to it
type ValidationErrors map[FieldName]string

// Empty reports whether validation passed
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

// Has reports whether name failed
func (v ValidationErrors) Has(name FieldName) bool {
	_, ok := v[name]
	return ok
}

// Clone returns a copy that can be handed out safely
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// Fields returns the failing field names sorted for stable output
func (v ValidationErrors) Fields() []FieldName {
	names := make([]FieldName, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Details renders the errors as errx details
func (v ValidationErrors) Details() map[string]any {
	out := make(map[string]any, len(v))
	for name, msg := range v {
		out[string(name)] = msg
	}
	return out
}

type rule struct {
	field    FieldName
	tag      string
	messages map[string]string
}

func (r rule) message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return r.messages["required"]
}

func required(field FieldName, msg string) rule {
	return rule{field: field, tag: "required", messages: map[string]string{"required": msg}}
}

var stepRules = map[Step][]rule{
	StepPersonal: {
		required(FieldFullName, "Name is required"),
		{
			field: FieldEmail,
			tag:   "required,seeker_email",
			messages: map[string]string{
				"required":     "Email is required",
				"seeker_email": "Invalid email format",
			},
		},
		{
			field: FieldPhone,
			tag:   "required,digits10",
			messages: map[string]string{
				"required": "Phone is required",
				"digits10": "Phone must be 10 digits",
			},
		},
	},
	StepEducation: {
		required(FieldGraduationDegree, "Graduation degree is required"),
		required(FieldGraduationState, "Graduation state is required"),
		required(FieldGraduationCity, "Graduation city is required"),
		required(FieldGraduationYear, "Graduation year is required"),
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("seeker_email", func(fl validator.FieldLevel) bool {
		return kernel.Email(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("digits10", func(fl validator.FieldLevel) bool {
		return kernel.Phone(fl.Field().String()).IsValid()
	})
	return v
}

// Validate checks the fields required on step. resumeOnFile waives the resume
// requirement when the persisted record already holds one. It never mutates rec.
func Validate(step Step, rec FormRecord, resumeOnFile bool) ValidationErrors {
	errs := ValidationErrors{}
	for _, r := range stepRules[step] {
		value := strings.TrimSpace(rec.Get(r.field))
		if err := validate.Var(value, r.tag); err != nil {
			errs[r.field] = r.message(err)
		}
	}
	if step == StepResume && !resumeOnFile && rec.Resume.IsEmpty() {
		errs[FieldResume] = "Resume is required"
	}
	return errs
}

// ValidateAll runs every step and merges the result
func ValidateAll(rec FormRecord, resumeOnFile bool) ValidationErrors {
	errs := ValidationErrors{}
	for _, step := range Steps() {
		for name, msg := range Validate(step, rec, resumeOnFile) {
			errs[name] = msg
		}
	}
	return errs
}
