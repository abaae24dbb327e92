package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Account email")
	registerCmd.Flags().StringP("email", "e", "", "Account email")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	verifyCmd.Flags().StringP("email", "e", "", "Account email")
	verifyCmd.Flags().StringP("token", "t", "", "Token from the verification email")
	forgotCmd.Flags().StringP("email", "e", "", "Account email")
	resetCmd.Flags().StringP("email", "e", "", "Account email")
	resetCmd.Flags().StringP("token", "t", "", "Token from the reset email")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, verifyCmd, forgotCmd, resetCmd, whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	Long:  "Sign in with your email and password. The session is saved in the data directory so later commands reuse it.",
	Example: heredoc.Doc(`
		# Prompt for everything
		drive login

		# Read the password from a pipe
		echo "$DRIVE_PASSWORD" | drive login -e ada@example.com
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			p := newPrompter(cmd)
			flag, _ := cmd.Flags().GetString("email")
			email, err := p.value("Email", flag)
			if err != nil {
				return err
			}
			password, err := p.password("Password")
			if err != nil {
				return err
			}
			user, err := a.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s <%s>\n", app.MsgWelcomeBack, user.FullName(), user.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if err := a.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.MsgLoggedOut)
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long:  "Create an account. A verification email is sent; finish with `drive verify`.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			p := newPrompter(cmd)
			var (
				req proto.RegisterRequest
				err error
			)
			email, _ := cmd.Flags().GetString("email")
			if req.Username, err = p.value("Email", email); err != nil {
				return err
			}
			first, _ := cmd.Flags().GetString("first-name")
			if req.FirstName, err = p.value("First name", first); err != nil {
				return err
			}
			last, _ := cmd.Flags().GetString("last-name")
			if req.LastName, err = p.value("Last name", last); err != nil {
				return err
			}
			if req.Password, err = p.password("Password"); err != nil {
				return err
			}
			if req.ConfirmPassword, err = p.password("Confirm password"); err != nil {
				return err
			}

			msg, err := a.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, msg)
			fmt.Fprintf(out, "Then run: drive verify --email %s --token <token from the email>\n", req.Username)
			return nil
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify your email address",
	Example: heredoc.Doc(`
		drive verify --email ada@example.com --token 3f2a...
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			p := newPrompter(cmd)
			email, _ := cmd.Flags().GetString("email")
			email, err := p.value("Email", email)
			if err != nil {
				return err
			}
			token, _ := cmd.Flags().GetString("token")
			if token, err = p.value("Token", token); err != nil {
				return err
			}
			msg, err := a.VerifyEmail(cmd.Context(), token, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg+". You can now login.")
			return nil
		})
	},
}

var forgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Email a password reset link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			email, _ := cmd.Flags().GetString("email")
			email, err := newPrompter(cmd).value("Email", email)
			if err != nil {
				return err
			}
			msg, err := a.ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s. The link expires in %s.\n", msg, app.ResetLinkExpiresIn)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Choose a new password with a reset token",
	Example: heredoc.Doc(`
		drive reset --email ada@example.com --token 9c1b...
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			p := newPrompter(cmd)
			var (
				req proto.ResetPasswordRequest
				err error
			)
			email, _ := cmd.Flags().GetString("email")
			if req.Email, err = p.value("Email", email); err != nil {
				return err
			}
			token, _ := cmd.Flags().GetString("token")
			if req.Token, err = p.value("Token", token); err != nil {
				return err
			}
			if req.Password, err = p.password("New password"); err != nil {
				return err
			}
			if req.ConfirmPassword, err = p.password("Confirm password"); err != nil {
				return err
			}
			msg, err := a.ResetPassword(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if !a.Session.Authenticated() {
				return session.ErrNoSession
			}
			user := a.Session.User()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.FullName(), user.Email)
			if exp, ok := a.Session.ExpiresAt(); ok {
				fmt.Fprintf(out, "Session expires %s\n", drive.FormatRelative(exp))
			}
			return nil
		})
	},
}
