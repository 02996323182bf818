package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchpad-labs/project-starter/internal/projects"
	"github.com/launchpad-labs/project-starter/internal/projects/domain"
)

var (
	genName     string
	genType     string
	genLanguage string
	genDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print getting-started steps for a project",
	Long: `Composes the same prompt as the web form and sends it to the configured
generator. With --dry-run only the prompt is printed.

Example:
  project-starter generate --name Shop --type website --language JavaScript`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genName, "name", "", "project name")
	generateCmd.Flags().StringVar(&genType, "type", "", "project type (website or application)")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "programming language")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print the prompt without calling the generator")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	state := domain.FormState{
		ProjectName: genName,
		ProjectType: domain.ProjectType(genType),
		Language:    domain.Language(genLanguage),
	}
	if !state.Complete() {
		return errors.New("--name, --type and --language are required")
	}

	if genDryRun {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), domain.BuildPrompt(state.ProjectName, state.ProjectType, state.Language))
		return err
	}

	gen, err := newGenerator(cmd.Context())
	if err != nil {
		return err
	}

	form := projects.NewForm(gen)
	form.SetProjectName(state.ProjectName)
	form.SetProjectType(state.ProjectType)
	form.SetLanguage(state.Language)
	if err := form.Submit(cmd.Context()); err != nil {
		return err
	}

	result := form.State().Result
	if result == "" {
		return errors.New("generation failed, see log for details")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}
