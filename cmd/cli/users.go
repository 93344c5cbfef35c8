package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errPasswordMismatch = errors.New("passwords do not match")

type newUser struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

func userCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  `Create and list users, and switch accounts between active and inactive.`,
	}
	cmd.AddCommand(createUserCmd(e))
	cmd.AddCommand(listUsersCmd(e))
	cmd.AddCommand(setActiveCmd(e, "activate", true))
	cmd.AddCommand(setActiveCmd(e, "deactivate", false))
	return cmd
}

func createUserCmd(e *env) *cobra.Command {
	var in newUser
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user; the password is prompted for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}

			if in.Password, err = e.readPassword("Password: "); err != nil {
				return err
			}
			confirm, err := e.readPassword("Repeat password: ")
			if err != nil {
				return err
			}
			if confirm != in.Password {
				return errPasswordMismatch
			}
			if err := a.Validator.Struct(in); err != nil {
				return err
			}

			u, err := a.UserService.CreateUser(cmd.Context(), in.Email, in.Username, in.Password)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", u.ID, u.Username) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func listUsersCmd(e *env) *cobra.Command {
	var page dto.Page
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users ordered by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			users, err := a.UserService.ListUsers(cmd.Context(), page)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No users found.") //nolint:errcheck
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", bold("ID"), bold("USERNAME"), bold("EMAIL"), bold("ACTIVE"), bold("CREATED")) //nolint:errcheck
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", //nolint:errcheck
					u.ID, u.Username, u.Email, activeLabel(u.IsActive), u.CreatedAt.UTC().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&page.Skip, "skip", 0, "rows to skip")
	cmd.Flags().IntVar(&page.Limit, "limit", 100, "maximum rows")
	return cmd
}

func setActiveCmd(e *env, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id|email|username>",
		Short: fmt.Sprintf("Mark a user as %s", activeLabel(active)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.application()
			if err != nil {
				return err
			}
			u, err := a.UserService.FindUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if u, err = a.UserService.SetActive(cmd.Context(), u.ID, active); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "User %d (%s) is now %s\n", u.ID, u.Username, activeLabel(u.IsActive)) //nolint:errcheck
			return nil
		},
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
