package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

var (
	flagCategory string
	flagWatch    bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch and merge news without launching the TUI",
	Long: `Run one fetch cycle for a section and merge the result into history.

With --watch the process stays up and repeats the cycle on the configured
interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := wire()
		if err != nil {
			return err
		}
		defer a.db.Close()

		category := a.cfg.StartCategory()
		if flagCategory != "" {
			category = model.Category(flagCategory)
			if !category.Valid() {
				return fmt.Errorf("unknown category %q (valid: %v)", flagCategory, model.Categories())
			}
		}

		if flagWatch {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a.sched.SetCategory(category)
			a.sched.Start(ctx)
			fmt.Printf("Actualizando %q cada %s. Ctrl+C para salir.\n", category, a.cfg.RefreshDuration())
			<-ctx.Done()
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		before := a.store.Len()
		drafts := a.adapter.Fetch(ctx, category)
		inserted := a.store.Merge(drafts)
		if err := a.db.SetLastRefresh(); err != nil {
			return fmt.Errorf("marking refresh: %w", err)
		}

		fmt.Printf("%s: %d borradores, %d nuevas (historial %d → %d)\n",
			category, len(drafts), inserted, before, a.store.Len())
		return nil
	},
}

func init() {
	refreshCmd.Flags().StringVar(&flagCategory, "category", "", "section to fetch (default from config)")
	refreshCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep refreshing on the configured interval")
}
