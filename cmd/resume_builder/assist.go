package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	assistJobDescription string
	assistJDFile         string
	enhanceAll           bool
	keywordsPretty       bool
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Generate resume content with Gemini (requires GEMINI_API_KEY)",
}

var assistSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Write a professional summary from the rest of the resume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			doc, err := a.session.GenerateSummary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Summary)
			return nil
		})
	},
}

var assistSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Suggest skills for the most recent job title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			doc, err := a.session.SuggestSkills(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Skills)
			return nil
		})
	},
}

var assistEnhanceCmd = &cobra.Command{
	Use:   "enhance [experience-id]",
	Short: "Rewrite an experience description (or all of them with --all)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if enhanceAll == (len(args) == 1) {
			return fmt.Errorf("pass either an experience id or --all")
		}
		return withApp(func(ctx context.Context, a *app) error {
			var (
				doc types.ResumeData
				err error
			)
			if enhanceAll {
				doc, err = a.session.EnhanceAllExperience(ctx)
			} else {
				doc, err = a.session.EnhanceExperience(ctx, args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc.Experience)
		})
	},
}

var assistKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List job description keywords missing from the resume",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jd, err := jobDescription()
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, a *app) error {
			keywords, err := a.session.AnalyzeKeywords(ctx, jd)
			if err != nil {
				return err
			}
			if keywordsPretty {
				observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(keywords)
				return nil
			}
			if len(keywords) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No missing keywords found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keywords, "\n"))
			return nil
		})
	},
}

var assistDraftCmd = &cobra.Command{
	Use:   "draft <job title>",
	Short: "Replace the resume with a generated draft for a job title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			doc, err := a.session.GenerateDraft(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc)
		})
	},
}

var assistCoverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Write a cover letter for a job description",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jd, err := jobDescription()
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, a *app) error {
			letter, err := a.session.CoverLetter(ctx, jd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), letter)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{assistKeywordsCmd, assistCoverLetterCmd} {
		c.Flags().StringVar(&assistJobDescription, "jd", "", "Job description text")
		c.Flags().StringVar(&assistJDFile, "jd-file", "", "Read the job description from a file")
		c.MarkFlagsMutuallyExclusive("jd", "jd-file")
	}
	assistKeywordsCmd.Flags().BoolVar(&keywordsPretty, "pretty", false, "Print a boxed report")
	assistEnhanceCmd.Flags().BoolVar(&enhanceAll, "all", false, "Enhance every experience entry")

	assistCmd.AddCommand(assistSummaryCmd, assistSkillsCmd, assistEnhanceCmd,
		assistKeywordsCmd, assistDraftCmd, assistCoverLetterCmd)
	rootCmd.AddCommand(assistCmd)
}

// jobDescription returns the --jd text or the contents of --jd-file.
// Blank input is rejected later with the user-facing message.
func jobDescription() (string, error) {
	if assistJDFile == "" {
		return assistJobDescription, nil
	}
	data, err := os.ReadFile(assistJDFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}
