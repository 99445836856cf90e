package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/input"
	"github.com/spigell/ghosthire/internal/jobsource"
	"github.com/spigell/ghosthire/internal/logger"
	"github.com/spigell/ghosthire/internal/session"
	"github.com/spigell/ghosthire/internal/tui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single job posting given as text, file or URL",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("text", "t", "", "job description text")
	analyzeCmd.Flags().StringP("file", "f", "", "file with the job description, - for stdin")
	analyzeCmd.Flags().StringP("url", "u", "", "job posting URL")
	analyzeCmd.Flags().Bool("raw", false, "print the raw service response as json")

	analyzeCmd.MarkFlagsMutuallyExclusive("text", "file", "url")
}

func analyze(cmd *cobra.Command) {
	ctx := cmd.Context()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	mode, value, err := resolveInput(cmd)
	if err != nil {
		logger.Fatal("reading job posting", zap.Error(err))
	}

	view, err := input.NewView(mode)
	if err != nil {
		logger.Fatal("selecting input", zap.Error(err))
	}
	view.SetValue(value)

	if tv, ok := view.(*input.TextView); ok && tv.TooShort() {
		logger.Warn(tv.Advisory(), zap.Int("minimum", input.MinTextLength))
	}

	client := ghosthire.New(ghosthire.Config{APIURL: config.APIURL, Timeout: config.Timeout}, logger)
	machine := session.NewMachine(ctx, client, logger.With(zap.String("api_url", config.APIURL)))

	machine.Dispatch(session.ModeSelected{Mode: mode})
	logger.Info("analyzing job posting", zap.String("mode", string(mode)))

	view.Submit(machine)
	machine.Wait()

	state := machine.State()
	if !state.HasResult() {
		logger.Fatal("analysis failed", zap.String("reason", state.Message()))
	}

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		pretty, _ := json.MarshalIndent(state.Result, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	fmt.Println(tui.RenderResult(state.Result, nil))
}

// resolveInput returns the mode and raw value from flags, falling back to
// interactive prompts when no flag is given.
func resolveInput(cmd *cobra.Command) (session.Mode, string, error) {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")

	switch {
	case url != "":
		return session.ModeURL, url, nil
	case text != "" || file != "":
		value, err := jobsource.Load(jobsource.Source{Value: text, File: file})
		return session.ModeText, value, err
	}

	return promptInput()
}

func promptInput() (session.Mode, string, error) {
	labels := make([]string, 0, 2)
	for _, o := range input.Options() {
		labels = append(labels, o.Label)
	}

	selectPrompt := promptui.Select{
		Label: input.LandingQuestion,
		Items: labels,
	}

	_, label, err := selectPrompt.Run()
	if err != nil {
		return session.ModeNone, "", err
	}

	mode, ok := input.ModeForLabel(label)
	if !ok {
		return session.ModeNone, "", fmt.Errorf("invalid choice: %s", label)
	}

	view, err := input.NewView(mode)
	if err != nil {
		return session.ModeNone, "", err
	}

	valuePrompt := promptui.Prompt{
		Label: view.Placeholder(),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}

	value, err := valuePrompt.Run()
	if err != nil {
		return session.ModeNone, "", err
	}

	return mode, value, nil
}
