package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/logger"
	"github.com/spigell/ghosthire/internal/poller"
	"github.com/spigell/ghosthire/internal/session"
	"github.com/spigell/ghosthire/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive analyzer",
	Run: func(cmd *cobra.Command, _ []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("log-file", "", "write logs to this file instead of discarding them")
	tuiCmd.Flags().Duration("poll-interval", poller.DefaultInterval, "how often the lines of code counter is refreshed")

	viper.BindPFlag("log-file", tuiCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("poll-interval", tuiCmd.Flags().Lookup("poll-interval"))
}

func runTUI(cmd *cobra.Command) {
	// The screen belongs to the program, so logs go to a file or nowhere.
	logPath := viper.GetString("log-file")
	if logPath == "" {
		logPath = os.DevNull
	}

	appLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logPath)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	// Fatal errors still have to reach the terminal.
	stderrLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		stderrLogger.Fatal("getting a config", zap.Error(err))
	}

	appLogger = logger.WithService(appLogger, config.APIURL)
	appLogger.Info("starting the interactive analyzer", zap.String("version", version))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := ghosthire.New(ghosthire.Config{APIURL: config.APIURL, Timeout: config.Timeout}, appLogger)
	machine := session.NewMachine(ctx, client, appLogger)

	program := tea.NewProgram(tui.NewModel(ctx, machine), tea.WithContext(ctx), tea.WithAltScreen())

	counter := poller.New(client, config.PollInterval, appLogger.Named("poller"),
		poller.WithOnUpdate(func(c ghosthire.LocCounter) {
			program.Send(tui.LocMsg(c))
		}),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	g.Go(func() error {
		counter.Start(gctx)
		<-gctx.Done()
		counter.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		stderrLogger.Fatal("running the interactive analyzer", zap.Error(err))
	}

	appLogger.Info("exiting")
}
