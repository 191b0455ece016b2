package main

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/spf13/cobra"
)

var devTokenCmd = &cobra.Command{
	Use:   "dev-token",
	Short: "Mint an access token signed with the server secret (development only)",
	RunE:  runDevToken,
}

var (
	devTokenUser   string
	devTokenRole   string
	devTokenSecret string
	devTokenIssuer string
	devTokenTTL    time.Duration
)

func init() {
	devTokenCmd.Flags().StringVar(&devTokenUser, "user", "", "User id to put in the subject (required)")
	devTokenCmd.Flags().StringVar(&devTokenRole, "role", string(kernel.RoleJobSeeker), "jobseeker, employer or admin")
	devTokenCmd.Flags().StringVar(&devTokenSecret, "secret", "", "Signing secret (overrides JWT_SECRET env var)")
	devTokenCmd.Flags().StringVar(&devTokenIssuer, "issuer", envOr("JWT_ISSUER", "seeker"), "Token issuer")
	devTokenCmd.Flags().DurationVar(&devTokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	if err := devTokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	rootCmd.AddCommand(devTokenCmd)
}

func runDevToken(cmd *cobra.Command, _ []string) error {
	secret := devTokenSecret
	if secret == "" {
		secret = envOr("JWT_SECRET", "")
	}
	if secret == "" {
		return fmt.Errorf("signing secret is required (set JWT_SECRET environment variable or use --secret flag)")
	}

	role := kernel.Role(devTokenRole)
	if len(auth.ScopesForRole(role)) == 0 {
		return fmt.Errorf("unknown role %q", devTokenRole)
	}

	svc := auth.NewJWTService(secret, devTokenIssuer, devTokenTTL)
	token, err := svc.GenerateAccessToken(kernel.Identity{UserID: kernel.UserID(devTokenUser), Role: role})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
