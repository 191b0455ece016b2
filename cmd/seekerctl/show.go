package main

import (
	"errors"
	"fmt"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/Abraxas-365/seeker/recruitment/profile/profileview"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print your profile and saved candidate details",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

var errNotLoggedIn = errors.New("not logged in, run `seekerctl login --token <token>` first")

func runShow(cmd *cobra.Command, _ []string) error {
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
	var rec candidate.Record
	if identity.IsJobSeeker() {
		rec, err = store.FetchCandidate(ctx, identity.UserID)
		if err != nil && !errx.IsCode(err, candidate.CodeCandidateNotFound) {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
	}

	if err := profileview.Render(cmd.OutOrStdout(), identity, p, rec); err != nil {
		if errx.IsAuth(err) {
			return fmt.Errorf("profile view is only available to job seekers: %w", err)
		}
		return err
	}
	return nil
}
