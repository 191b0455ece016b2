package profileview

import (
	"html"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/microcosm-cc/bluemonday"
)

// NotProvided is shown for every empty value
const NotProvided = "Not provided"

// Row is one labelled value
type Row struct {
	Label string
	Value string
}

// Section groups the candidate rows of one wizard step
type Section struct {
	Title string
	Rows  []Row
}

// View is the sanitized, display-ready profile page
type View struct {
	Name     string
	Email    string
	Mobile   string
	Avatar   string
	Sections []Section
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// display strips markup from user-provided text and substitutes NotProvided
func display(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotProvided
	}
	cleaned := strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(trimmed)))
	if cleaned == "" {
		return NotProvided
	}
	return cleaned
}

// Authorize refuses anyone but an authenticated job seeker
func Authorize(identity kernel.Identity) error {
	if !identity.IsAuthenticated() {
		return profile.ErrNotAuthenticated()
	}
	if identity.Role != kernel.RoleJobSeeker {
		return profile.ErrRoleNotAllowed().WithDetail("role", identity.Role.String())
	}
	return nil
}

// Build assembles the view. Both inputs may be nil.
func Build(p *profile.Profile, rec candidate.Record) View {
	v := View{
		Name:   NotProvided,
		Email:  NotProvided,
		Mobile: NotProvided,
		Avatar: NotProvided,
	}
	if p != nil {
		v.Name = display(p.Name)
		v.Email = display(p.Email)
		v.Mobile = display(p.Mobile)
		v.Avatar = display(p.Avatar)
	}

	for _, step := range candidate.Steps() {
		section := Section{Title: step.String()}
		for _, spec := range candidate.FieldsForStep(step) {
			var value string
			if spec.Name == candidate.FieldResume {
				value = rec.ResumeURL()
			} else {
				value = rec.Text(spec.Name)
			}
			section.Rows = append(section.Rows, Row{Label: spec.Label, Value: display(value)})
		}
		v.Sections = append(v.Sections, section)
	}
	return v
}

const pageTemplate = `{{.Name}}
  Email:  {{.Email}}
  Mobile: {{.Mobile}}
  Avatar: {{.Avatar}}
{{range .Sections}}
[{{.Title}}]
{{range .Rows}}  {{printf "%-26s" .Label}} {{.Value}}
{{end}}{{end}}`

var page = template.Must(template.New("profile").Parse(pageTemplate))

// Render writes the profile page for identity, or an auth error when the
// caller must be sent back to login.
func Render(w io.Writer, identity kernel.Identity, p *profile.Profile, rec candidate.Record) error {
	if err := Authorize(identity); err != nil {
		return err
	}
	if err := page.Execute(w, Build(p, rec)); err != nil {
		return profile.ErrRenderFailed().WithCause(err)
	}
	return nil
}
