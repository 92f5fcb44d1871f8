package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	renderTemplate string
	renderOut      string
	renderText     bool
	exportTemplate string
	exportOut      string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, id := range types.Templates {
			marker := ""
			if id == types.DefaultTemplate {
				marker = " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", id, marker)
		}
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume to HTML (or its plain text with --text)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(_ context.Context, a *app) error {
			doc, err := a.session.Render(types.TemplateID(renderTemplate))
			if err != nil {
				return err
			}

			out := doc.HTML
			if renderText {
				text, err := rendering.PlainText(doc)
				if err != nil {
					return err
				}
				out = []byte(text + "\n")
			}

			if renderOut == "" || renderOut == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(renderOut, out, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", renderOut, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s template to %s\n", doc.Template, renderOut)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as a one-page A4 PDF",
	Long:  "Renders the resume, captures it with headless Chrome and writes a one-page A4 PDF to the export directory or bucket.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			location, err := a.session.Export(ctx, types.TemplateID(exportTemplate), exportOut)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		})
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", string(types.DefaultTemplate), "Template id")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (stdout when empty)")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Print the visible text instead of HTML")

	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", string(types.DefaultTemplate), "Template id")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "resume.pdf", "Output file name")

	rootCmd.AddCommand(templatesCmd, renderCmd, exportCmd)
}
