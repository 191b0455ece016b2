package candidate

import (
	"testing"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func TestCandidate_ApplyValues(t *testing.T) {
	c := &Candidate{UserID: "u-1", Company: "Old"}
	c.ApplyValues(map[FieldName]string{FieldFullName: "Asha", FieldGraduationYear: "2020"})

	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, "2020", c.Value(FieldGraduationYear))
	assert.Equal(t, "", c.Company, "missing keys clear the field")
	assert.Equal(t, "", c.Value(FieldResume))

	rec := c.FormRecord()
	assert.Equal(t, "Asha", rec.Get(FieldFullName))
	assert.Nil(t, rec.Resume)
}

func TestCandidate_AttachResume(t *testing.T) {
	c := &Candidate{ResumeText: "stale"}
	assert.False(t, c.HasResume())

	c.AttachResume("resumes/u-1/cv.pdf", "https://bucket/resumes/u-1/cv.pdf",
		&Attachment{FileName: "cv.pdf", ContentType: "application/pdf"})
	assert.True(t, c.HasResume())
	assert.Equal(t, "cv.pdf", c.ResumeFileName)
	assert.Empty(t, c.ResumeText)
}

func TestAuthorize(t *testing.T) {
	err := Authorize(kernel.Identity{})
	assert.True(t, errx.IsCode(err, CodeNotAuthenticated))
	assert.Equal(t, "User not authenticated", err.(*errx.Error).Message)
	assert.True(t, errx.IsAuth(err))

	err = Authorize(kernel.Identity{UserID: "u-1", Role: kernel.RoleEmployer})
	assert.True(t, errx.IsCode(err, CodeRoleNotAllowed))
	assert.True(t, errx.IsAuth(err))

	assert.NoError(t, Authorize(kernel.Identity{UserID: "u-1", Role: kernel.RoleJobSeeker}))
}

func TestSteps(t *testing.T) {
	assert.Equal(t, FirstStep, Steps()[0])
	assert.Equal(t, LastStep, Steps()[len(Steps())-1])
	assert.False(t, Step(0).Valid())
	assert.False(t, Step(6).Valid())
	assert.Len(t, Schema, 26)
	assert.Len(t, FieldsForStep(StepPersonal), 3)
}

func TestNormalizeResumeType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		fileName    string
		want        string
		allowed     bool
	}{
		{"declared pdf", "application/pdf", "cv.bin", ResumeTypePDF, true},
		{"params stripped", "text/plain; charset=utf-8", "cv", ResumeTypeText, true},
		{"extension fallback", "application/octet-stream", "CV.DOCX", ResumeTypeDOCX, true},
		{"empty type uses extension", "", "resume.pdf", ResumeTypePDF, true},
		{"unknown stays unknown", "image/png", "photo.png", "image/png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeResumeType(tt.contentType, tt.fileName)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.allowed, IsAllowedResumeType(got))
		})
	}
}
