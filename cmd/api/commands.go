package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ligandscope/core/internal/config"
	"github.com/ligandscope/core/internal/export"
	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/models"
	"github.com/ligandscope/core/internal/render"
)

const shutdownTimeout = 10 * time.Second

// rootOptions holds the persistent flags and what they resolve to.
type rootOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logging.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ligandscope",
		Short:         "Explore ligand-receptor interactions between cell types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCommand(opts),
		newPairsCommand(opts),
		newRenderCommand(opts),
		newExportCommand(opts),
	)
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.log = log.Named(cmd.Name())
	return nil
}

func (o *rootOptions) app(ctx context.Context) (*app, error) {
	return newApp(ctx, o.cfg, o.log)
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.app(ctx)
			if err != nil {
				opts.log.Error("dataset load failed", logging.Err(err))
				return err
			}

			gin.SetMode(a.cfg.Server.Mode)
			srv := &http.Server{
				Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
				Handler:           newRouter(a),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				opts.log.Info("server starting", logging.Int("port", a.cfg.Server.Port), logging.Int("pairs", a.store.Len()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			opts.log.Info("server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newPairsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "List the cell pairs present in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range a.store.Pairs() {
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
}

type pairFlags struct {
	source string
	target string
}

func (p *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.source, "source", "", "source cell type (default: first configured type)")
	cmd.Flags().StringVar(&p.target, "target", "", "target cell type (default: second configured type)")
}

func (p *pairFlags) resolve(a *app) (models.CellType, models.CellType) {
	source, target := a.explorer.Selector().Defaults()
	if p.source != "" {
		source = models.CellType(p.source)
	}
	if p.target != "" {
		target = models.CellType(p.target)
	}
	return source, target
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var (
		pair   pairFlags
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the heatmap PNG and chord SVG of a cell pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			view, err := a.explorer.Explore(pair.resolve(a))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			heatmap := filepath.Join(outDir, string(view.Key)+"_heatmap.png")
			if err := writeFile(heatmap, func(f *os.File) error {
				return render.HeatmapPNG(f, view.Heatmap, a.cfg.Render.HeatmapWidth, a.cfg.Render.HeatmapHeight)
			}); err != nil {
				return err
			}
			chord := filepath.Join(outDir, string(view.Key)+"_chord.svg")
			if err := writeFile(chord, func(f *os.File) error {
				return render.ChordSVG(f, view.Chord, a.cfg.Render.ChordSize)
			}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), heatmap)
			fmt.Fprintln(cmd.OutOrStdout(), chord)
			return nil
		},
	}
	pair.register(cmd)
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory the images are written to")
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		pair pairFlags
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tables of a cell pair as an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			source, target := pair.resolve(a)
			view, err := a.explorer.Explore(source, target)
			if err != nil {
				return err
			}
			activities, err := a.explorer.LigandActivities(source, target)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = string(view.Key) + ".xlsx"
			}
			if err := writeFile(path, func(f *os.File) error {
				return export.WriteWorkbook(f, view, activities)
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	pair.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "workbook path (default: <pair>.xlsx)")
	return cmd
}

// writeFile creates path and lets write fill it, removing the file on failure.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
