package main

import (
	"time"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/services"
	authutil "speed_go_backend/internal/utils/auth"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userPassword string
	userRole     string
)

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Account email (required)")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Account password (required)")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleSubmitter), "Role: submitter, moderator or analyst")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd, userSetRoleCmd)
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with a given role",
	Long: `Create an account. Signup through the API always yields a submitter;
moderators and analysts are created here.

Example:
  speedctl user create --email mod@example.com --password s3cretpass --role moderator`,
	Args: cobra.NoArgs,
	RunE: runUserCreate,
}

var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <email> <role>",
	Short: "Change the role of an existing account",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserSetRole,
}

func newAuthService() *services.AuthService {
	cfg, db := openDB()
	return services.NewAuthService(services.NewUserServiceDB(db), authutil.NewTokenIssuer(cfg.JWTSecret, time.Hour))
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	user, err := newAuthService().CreateUser(cmd.Context(), userEmail, userPassword, userRole)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	if humanOutput {
		outputHuman("Created %s (%s) with id %s\n", user.Email, user.Role, user.ID)
		return nil
	}
	return outputJSON(user)
}

func runUserSetRole(cmd *cobra.Command, args []string) error {
	user, err := newAuthService().SetRole(cmd.Context(), args[0], args[1])
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	if humanOutput {
		outputHuman("%s is now %s\n", user.Email, user.Role)
		return nil
	}
	return outputJSON(user)
}
