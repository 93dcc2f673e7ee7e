package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediavault/internal/importer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the import directory and ingest new media files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		im := importer.New(engine.Files, engine.CurrentUser(), engine.Config.Import.Directory)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if engine.Config.Import.ScanOnStartup {
			result, err := im.ScanOnce(ctx)
			if err != nil {
				return err
			}
			for _, failure := range result.Failed {
				fmt.Fprintf(os.Stderr, "failed to import %s: %v\n", failure.Name, failure.Err)
			}
			fmt.Printf("Imported %d file(s) from %s\n", len(result.Succeeded), engine.Config.Import.Directory)
		}

		if !engine.Config.Import.Watch {
			return nil
		}

		if err := im.Start(ctx); err != nil {
			return err
		}
		defer im.Stop()

		fmt.Printf("Watching %s, press Ctrl+C to stop\n", engine.Config.Import.Directory)

		// Wait for shutdown signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		fmt.Println("Received shutdown signal")
		return nil
	},
}
