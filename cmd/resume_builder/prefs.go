package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/types"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the preferred color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if len(args) == 1 {
				theme, ok := types.ParseTheme(args[0])
				if !ok {
					return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
				}
				a.themes.Set(ctx, theme)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.themes.Get(ctx))
			return nil
		})
	},
}

var contactMsg contact.Message

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if err := a.contact.Submit(ctx, contactMsg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), contact.SuccessMessage)
			return nil
		})
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactMsg.Name, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactMsg.Email, "email", "", "Your email address")
	contactCmd.Flags().StringVar(&contactMsg.Message, "message", "", "Message text")

	rootCmd.AddCommand(themeCmd, contactCmd)
}
