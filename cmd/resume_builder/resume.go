package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

var showPretty bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current resume document as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(_ context.Context, a *app) error {
			if showPretty {
				observability.NewPrinter(cmd.OutOrStdout()).PrintResume(a.store.Snapshot())
				return nil
			}
			return printJSON(cmd.OutOrStdout(), a.store.Snapshot())
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a scalar field (name, email, phone, website, summary, skills)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := types.ParseField(args[0])
		if err != nil {
			return err
		}
		return dispatch(cmd, store.SetField{Field: field, Value: args[1]})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <list>",
	Short: "Append an empty element to education, experience or projects and print its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := types.ParseListName(args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, a *app) error {
			id, _, err := a.store.Add(ctx, list)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var updateFields []string

var updateCmd = &cobra.Command{
	Use:   "update <list> <id> --field key=value...",
	Short: "Update fields of one list element",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := types.ParseListName(args[0])
		if err != nil {
			return err
		}
		fields, err := parseFieldPairs(updateFields)
		if err != nil {
			return err
		}
		patch, err := store.ParsePatch(list, fields)
		if err != nil {
			return err
		}
		return dispatch(cmd, store.UpdateItem{List: list, ID: args[1], Patch: patch})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <list> <id>",
	Short: "Remove one list element",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := types.ParseListName(args[0])
		if err != nil {
			return err
		}
		return dispatch(cmd, store.DeleteItem{List: list, ID: args[1]})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the document with the placeholder resume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetYes {
			ok, err := confirm("Clear the resume and start over?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "Reset cancelled")
				return nil
			}
		}
		return dispatch(cmd, store.ResetData{})
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Replace the document with a JSON draft file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		doc, err := store.ImportDraft(data)
		if err != nil {
			return err
		}
		return dispatch(cmd, store.LoadDraft{Data: doc})
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPretty, "pretty", false, "Print a boxed overview instead of JSON")
	updateCmd.Flags().StringArrayVarP(&updateFields, "field", "f", nil, "Field to set as key=value (repeatable)")
	_ = updateCmd.MarkFlagRequired("field")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(showCmd, setCmd, addCmd, updateCmd, deleteCmd, resetCmd, loadCmd)
}

// dispatch applies action and prints the resulting document.
func dispatch(cmd *cobra.Command, action store.Action) error {
	return withApp(func(ctx context.Context, a *app) error {
		doc, err := a.store.Dispatch(ctx, action)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), doc)
	})
}

// parseFieldPairs turns ["key=value", ...] into a map. Values may contain '='.
func parseFieldPairs(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", pair)
		}
		fields[key] = value
	}
	return fields, nil
}

func confirm(message string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
