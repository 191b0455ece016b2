package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token and load your profile",
	RunE:  runLogin,
}

var loginToken string

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer access token (required)")
	if err := loginCmd.MarkFlagRequired("token"); err != nil {
		panic(fmt.Sprintf("failed to mark token flag as required: %v", err))
	}
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.SetToken(ctx, loginToken); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	p, err := store.FetchProfile(ctx)
	if err != nil {
		_ = store.ClearToken(ctx)
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", p.Name, p.Role)
	return nil
}
