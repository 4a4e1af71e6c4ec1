package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/cache"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or reset the local news history",
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.HistoryPath()
		db, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Historial: %s\n", dbPath)
		fmt.Printf("Noticias: %d\n", count)
		fmt.Printf("Tamaño: %s\n", formatBytes(size))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored news history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := cache.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		if err := db.Clear(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("Historial borrado.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
