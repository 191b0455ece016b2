package candidatetui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/refdata"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateclient"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateform"
)

// Session is the part of the client store the wizard waits on after a submit
type Session interface {
	Wait()
	Status() candidateclient.Status
	DismissError()
}

// Outcome is how a wizard run ended
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeSaved
)

type action string

const (
	actionNext     action = "Next"
	actionPrevious action = "Previous"
	actionSubmit   action = "Submit"
	actionQuit     action = "Quit"
)

// Wizard walks a user through the candidate form one step at a time
type Wizard struct {
	controller *candidateform.Controller
	session    Session
	driver     PromptDriver
	places     *refdata.Provider
	identity   kernel.Identity
	readFile   func(string) ([]byte, error)
}

// Option customizes a Wizard
type Option func(*Wizard)

// WithFileReader replaces os.ReadFile for loading the resume
func WithFileReader(read func(string) ([]byte, error)) Option {
	return func(w *Wizard) { w.readFile = read }
}

func NewWizard(
	controller *candidateform.Controller,
	session Session,
	driver PromptDriver,
	places *refdata.Provider,
	identity kernel.Identity,
	opts ...Option,
) *Wizard {
	w := &Wizard{
		controller: controller,
		session:    session,
		driver:     driver,
		places:     places,
		identity:   identity,
		readFile:   os.ReadFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run prompts until the profile is saved or the user quits. The controller is
// closed when Run returns.
func (w *Wizard) Run(ctx context.Context) (Outcome, error) {
	defer w.controller.Close()

	for {
		step := w.controller.Step()
		header := fmt.Sprintf("\nStep %d of %d: %s", step, candidate.LastStep, step)
		if err := w.driver.Info(ctx, header); err != nil {
			return OutcomeQuit, err
		}
		if err := w.promptStep(ctx, step); err != nil {
			return OutcomeQuit, err
		}

		act, err := w.chooseAction(ctx, step)
		if err != nil {
			return OutcomeQuit, err
		}

		switch act {
		case actionNext:
			if !w.controller.Next() {
				if err := w.showErrors(ctx); err != nil {
					return OutcomeQuit, err
				}
			}
		case actionPrevious:
			w.controller.Previous()
		case actionSubmit:
			saved, err := w.submit(ctx)
			if err != nil {
				return OutcomeQuit, err
			}
			if saved {
				return OutcomeSaved, nil
			}
		case actionQuit:
			return OutcomeQuit, nil
		}
	}
}

func (w *Wizard) promptStep(ctx context.Context, step candidate.Step) error {
	for _, spec := range candidate.FieldsForStep(step) {
		var err error
		switch spec.Kind {
		case candidate.KindFile:
			err = w.promptResume(ctx, spec)
		default:
			var value string
			value, err = w.promptText(ctx, spec)
			if err == nil {
				err = w.controller.SetField(spec.Name, value)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) promptText(ctx context.Context, spec candidate.FieldSpec) (string, error) {
	rec := w.controller.Record()
	current := rec.Get(spec.Name)

	var options []string
	switch spec.Kind {
	case candidate.KindMultiline:
		return w.driver.TextArea(ctx, TextAreaConfig{Message: spec.Label, Default: current})
	case candidate.KindRegion:
		options = w.places.Regions()
	case candidate.KindLocality:
		options = w.places.Localities(rec.Get(spec.RegionField))
	}

	// unknown region or empty reference data falls back to free text
	if len(options) == 0 {
		return w.driver.Input(ctx, InputConfig{Message: spec.Label, Default: current})
	}

	choices, defaultIndex := pickerChoices(options, current)
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      spec.Label,
		Options:      choices,
		DefaultIndex: defaultIndex,
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(choices) {
		return current, nil
	}
	if current == "" && idx == 0 {
		return "", nil
	}
	return choices[idx], nil
}

// blankChoice leads the picker when the field is still empty
const blankChoice = "(leave blank)"

// pickerChoices makes sure accepting the default never changes the field: an
// empty value gets a leading blank entry and a saved value missing from the
// reference table is offered first as itself.
func pickerChoices(options []string, current string) ([]string, int) {
	if current == "" {
		return append([]string{blankChoice}, options...), 0
	}
	if i := indexOf(options, current); i >= 0 {
		return options, i
	}
	return append([]string{current}, options...), 0
}

func (w *Wizard) promptResume(ctx context.Context, spec candidate.FieldSpec) error {
	help := "Path to a PDF, DOCX or TXT file"
	if w.controller.ResumeOnFile() {
		help = "Leave blank to keep the resume on file"
	}

	for {
		path, err := w.driver.Input(ctx, InputConfig{Message: spec.Label + " file", Help: help})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}

		data, err := w.readFile(path)
		if err != nil {
			if infoErr := w.driver.Info(ctx, fmt.Sprintf("  ! cannot read %s: %v", path, err)); infoErr != nil {
				return infoErr
			}
			continue
		}

		att := &candidate.Attachment{
			FileName:    filepath.Base(path),
			ContentType: candidate.NormalizeResumeType("", path),
			Data:        data,
		}
		if err := w.controller.SetResume(att); err != nil {
			if infoErr := w.driver.Info(ctx, "  ! "+errorMessage(err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		return nil
	}
}

func (w *Wizard) chooseAction(ctx context.Context, step candidate.Step) (action, error) {
	var actions []action
	if step < candidate.LastStep {
		actions = append(actions, actionNext)
	} else {
		actions = append(actions, actionSubmit)
	}
	if step > candidate.FirstStep {
		actions = append(actions, actionPrevious)
	}
	actions = append(actions, actionQuit)

	options := make([]string, len(actions))
	for i, a := range actions {
		options[i] = string(a)
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "What next?", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return actionQuit, nil
	}
	return actions[idx], nil
}

// submit reports whether the backend accepted the profile. Auth failures end
// the run; everything else leaves the form editable.
func (w *Wizard) submit(ctx context.Context) (bool, error) {
	intent, err := w.controller.Submit(ctx, w.identity)
	if err != nil {
		switch {
		case errx.IsCode(err, candidate.CodeValidationFailed):
			return false, w.showErrors(ctx)
		case errx.IsAuth(err):
			return false, err
		default:
			return false, w.driver.Info(ctx, "  ! "+errorMessage(err))
		}
	}

	w.session.Wait()
	st := w.session.Status()
	if st.Err != nil {
		w.session.DismissError()
		if errx.IsAuth(st.Err) {
			return false, st.Err
		}
		return false, w.driver.Info(ctx, "  ! Save failed: "+errorMessage(st.Err))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return false, ctx.Err()
	}

	verb := "created"
	if intent.Kind == candidate.IntentUpdate {
		verb = "updated"
	}
	return true, w.driver.Info(ctx, fmt.Sprintf("Profile %s.", verb))
}

func (w *Wizard) showErrors(ctx context.Context) error {
	errs := w.controller.Errors()
	if errs.Empty() {
		return nil
	}
	order := make(map[candidate.FieldName]int, len(candidate.Schema))
	for i, spec := range candidate.Schema {
		order[spec.Name] = i
	}
	fields := errs.Fields()
	sort.SliceStable(fields, func(i, j int) bool { return order[fields[i]] < order[fields[j]] })

	for _, name := range fields {
		if err := w.driver.Info(ctx, "  ! "+errs[name]); err != nil {
			return err
		}
	}
	return nil
}

func errorMessage(err error) string {
	if e, ok := errx.As(err); ok {
		return e.Message
	}
	return err.Error()
}
