package main

import (
	"errors"
	"fmt"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/refdata"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateform"
	"github.com/Abraxas-365/seeker/recruitment/candidate/candidatetui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Create or update your candidate profile step by step",
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := store.FetchProfile(ctx)
	if err != nil {
		if errx.IsAuth(err) {
			return errNotLoggedIn
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}
	identity := p.Identity()
	if err := candidate.Authorize(identity); err != nil {
		return fmt.Errorf("cannot edit a candidate profile: %w", err)
	}

	places, err := refdata.Default()
	if err != nil {
		return err
	}

	controller := candidateform.NewController(store)
	if err := controller.Hydrate(ctx, store, identity.UserID); err != nil {
		return fmt.Errorf("failed to load saved profile: %w", err)
	}

	wizard := candidatetui.NewWizard(controller, store, candidatetui.NewSurveyDriver(), places, identity)
	outcome, err := wizard.Run(ctx)
	switch {
	case errors.Is(err, candidatetui.ErrAborted):
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing saved")
		return nil
	case err != nil:
		return err
	case outcome == candidatetui.OutcomeQuit:
		fmt.Fprintln(cmd.OutOrStdout(), "Closed without saving")
	}
	return nil
}
