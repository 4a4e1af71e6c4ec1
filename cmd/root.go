package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/ai"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/cache"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/config"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/enrich"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/scheduler"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/source"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/store"
	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagRefresh bool
)

var rootCmd = &cobra.Command{
	Use:   "mundonews",
	Short: "Lector de noticias reescritas con IA",
	Long:  "mundonews trae titulares recientes por sección, los reescribe con un modelo generativo y los presenta con análisis profundo e ilustraciones bajo demanda.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force a fetch cycle before launching")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mundonews %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app bundles the wired components every command starts from.
type app struct {
	cfg     *config.Config
	db      *cache.Cache
	store   *store.Store
	gen     ai.Generator
	adapter *source.Adapter
	sched   *scheduler.Scheduler
}

func wire() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := cache.Open(config.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}

	st := store.Open(db)
	st.SetCap(cfg.Cap())

	// A missing AI key is not fatal: the adapter chain ends up empty and
	// every fetch degrades to the sentinel draft.
	var gen ai.Generator
	if key := cfg.AIKey(); key != "" {
		gen, err = ai.New(cfg.AI, key)
		if err != nil {
			db.Close()
			return nil, err
		}
	} else {
		fmt.Fprintln(os.Stderr, "aviso: sin clave de IA (GEMINI_API_KEY / OPENAI_API_KEY); el servicio de noticias no estará disponible")
	}

	adapter := source.NewAdapter(cfg, gen)

	runner := scheduler.RunnerFunc(func(ctx context.Context, category model.Category) error {
		drafts := adapter.Fetch(ctx, category)
		st.Merge(drafts)
		return db.SetLastRefresh()
	})

	return &app{
		cfg:     cfg,
		db:      db,
		store:   st,
		gen:     gen,
		adapter: adapter,
		sched:   scheduler.New(cfg.RefreshDuration(), runner, cfg.StartCategory()),
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := wire()
	if err != nil {
		return err
	}
	defer a.db.Close()

	// Startup fetch, unless the last one is still fresh.
	if flagRefresh || a.db.NeedsRefresh(a.cfg.RefreshDuration()) {
		fmt.Println("Obteniendo noticias...")
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		err := a.sched.Run(ctx, a.cfg.StartCategory())
		cancel()
		if err != nil && err != scheduler.ErrRefreshInFlight {
			fmt.Fprintf(os.Stderr, "  [aviso] %v\n", err)
		}
	}

	return tui.Run(tui.RunOpts{
		Cfg:       a.cfg,
		Store:     a.store,
		Scheduler: a.sched,
		DeepDives: enrich.NewDeepDives(a.store, a.gen),
		Images:    enrich.NewImages(a.store, a.gen),
	})
}
