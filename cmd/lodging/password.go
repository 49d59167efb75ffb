package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garyjia/lodging-sap/internal/credentials"
)

func newPasswordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the SAP password kept in the system credential store",
	}

	set := &cobra.Command{
		Use:   "set <user>",
		Short: "Store the password for a user (read from stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}

			store := credentials.NewStore(a.cfg.SAP.System)
			if err := store.Set(args[0], strings.TrimRight(line, "\r\n")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password for user %q and system %q saved\n", args[0], store.System())
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <user>",
		Short: "Print the stored password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := credentials.NewStore(a.cfg.SAP.System)
			password, err := store.Get(args[0])
			if errors.Is(err, credentials.ErrNoPassword) {
				return fmt.Errorf("no password found for user %q and system %q", args[0], store.System())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <user>",
		Short: "Remove the stored password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return credentials.NewStore(a.cfg.SAP.System).Delete(args[0])
		},
	}

	cmd.AddCommand(set, get, del)
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	var workbookPath string

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or change the SAP user saved next to the workbook",
	}
	cmd.PersistentFlags().StringVarP(&workbookPath, "workbook", "w", "", "control workbook (.xlsx)")

	path := func() string {
		if workbookPath != "" {
			return workbookPath
		}
		return a.cfg.Workbook.Path
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := credentials.LoadUser(path())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <user>",
		Short: "Save the user for the workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.SaveUser(path(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %q saved to %s\n", args[0], credentials.UserFile(path()))
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}
