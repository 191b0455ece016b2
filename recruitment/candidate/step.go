package candidate

import "fmt"

// Step is the wizard page index, always within [FirstStep, LastStep]
type Step int

const (
	StepPersonal Step = iota + 1
	StepEducation
	StepExperience
	StepLocation
	StepResume
)

const (
	FirstStep = StepPersonal
	LastStep  = StepResume
)

// Valid reports whether s is a real page
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "Personal"
	case StepEducation:
		return "Education"
	case StepExperience:
		return "Experience"
	case StepLocation:
		return "Location"
	case StepResume:
		return "Resume"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Steps returns every page in order
func Steps() []Step {
	return []Step{StepPersonal, StepEducation, StepExperience, StepLocation, StepResume}
}
