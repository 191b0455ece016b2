package profileview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seeker = kernel.Identity{UserID: "u-1", Role: kernel.RoleJobSeeker}

func TestBuild_EmptyInputs(t *testing.T) {
	v := Build(nil, nil)
	assert.Equal(t, NotProvided, v.Name)
	require.Len(t, v.Sections, len(candidate.Steps()))

	for _, s := range v.Sections {
		for _, row := range s.Rows {
			assert.Equal(t, NotProvided, row.Value, row.Label)
		}
	}
}

func TestBuild_SanitizesMarkup(t *testing.T) {
	p := &profile.Profile{ID: "u-1", Name: "<b>Asha</b> & co", Email: "asha@example.com"}
	rec := candidate.Record{
		"company":          "<script>alert(1)</script>",
		"graduation_year":  float64(2020),
		"responsibilities": "  ",
	}
	v := Build(p, rec)

	assert.Equal(t, "Asha & co", v.Name)
	assert.Equal(t, NotProvided, v.Mobile)

	values := map[string]string{}
	for _, s := range v.Sections {
		for _, row := range s.Rows {
			values[row.Label] = row.Value
		}
	}
	assert.Equal(t, NotProvided, values["Company"])
	assert.Equal(t, "2020", values["Graduation year"])
	assert.Equal(t, NotProvided, values["Responsibilities"])
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	p := &profile.Profile{ID: "u-1", Name: "Asha"}
	rec := candidate.Record{"resume": "https://bucket/cv.pdf"}

	require.NoError(t, Render(&buf, seeker, p, rec))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Asha\n"))
	assert.Contains(t, out, "[Resume]")
	assert.Contains(t, out, "https://bucket/cv.pdf")
	assert.Contains(t, out, "Email:  Not provided")
}

func TestRender_Unauthorized(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, kernel.Identity{}, nil, nil)
	assert.True(t, errx.IsCode(err, profile.CodeNotAuthenticated))
	assert.True(t, errx.IsAuth(err))

	err = Render(&buf, kernel.Identity{UserID: "e-1", Role: kernel.RoleEmployer}, nil, nil)
	assert.True(t, errx.IsCode(err, profile.CodeRoleNotAllowed))
	assert.Zero(t, buf.Len())
}
