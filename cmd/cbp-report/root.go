package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cbpmetrics/internal/config"
	"cbpmetrics/internal/dataprocessing"
	"cbpmetrics/internal/exporter"
	"cbpmetrics/internal/infrastructure"
	"cbpmetrics/internal/regional"
	"cbpmetrics/internal/services"
)

// session is the state shared by the subcommands once flags are parsed
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	reader  *dataprocessing.Reader
	service *services.RegionalService
	csv     *exporter.CSVWriter
	xlsx    *exporter.XLSXWriter
}

type rootOptions struct {
	configFile string
	outDir     string
	column     string
	xlsx       bool
	noBOM      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rt := &session{}

	cmd := &cobra.Command{
		Use:           "cbp-report",
		Short:         "Regional indicators from County Business Patterns extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (defaults to config.yaml or $CBP_CONFIG_FILE)")
	flags.StringVar(&opts.outDir, "out", "", "reports directory (overrides export.dir)")
	flags.StringVar(&opts.column, "column", "", "value column to read, e.g. EMP or ESTAB (overrides analysis.value_column)")
	flags.BoolVar(&opts.xlsx, "xlsx", false, "write an Excel workbook with every result table (overrides export.xlsx)")
	flags.BoolVar(&opts.noBOM, "no-bom", false, "write CSV files without a UTF-8 BOM")

	cmd.AddCommand(
		newLocationQuotientCmd(rt),
		newTableLocationQuotientCmd(rt),
		newShiftShareCmd(rt),
		newSpecializationCmd(rt),
	)
	return cmd
}

func (rt *session) init(cmd *cobra.Command, opts *rootOptions) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if opts.outDir != "" {
		cfg.Export.Dir = opts.outDir
	}
	if opts.column != "" {
		cfg.Analysis.ValueColumn = opts.column
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.Export.XLSX = opts.xlsx
	}
	if opts.noBOM {
		cfg.Export.WriteBOM = false
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	paths, err := config.GetPaths("", cfg.Export)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	rt.cfg = cfg
	rt.logger = infrastructure.WithComponent(logger, "cbp-report").With(slog.String("command", cmd.Name()))
	rt.reader = dataprocessing.NewReader(dataprocessing.ColumnsFrom(cfg.Analysis), rt.logger)
	rt.service = services.NewRegionalService(cfg.Analysis, rt.logger)
	rt.csv = exporter.NewCSVWriter(paths, cfg.Export.WriteBOM, rt.logger)
	rt.xlsx = exporter.NewXLSXWriter(paths, rt.logger)

	cmd.SetContext(infrastructure.EnsureTraceID(cmd.Context()))
	return nil
}

// loadSeries reads one series from an extract. An empty geo selects the only
// geography of the file, or the aggregate of all geographies when there are
// several.
func (rt *session) loadSeries(path, geo string) (regional.Series, error) {
	table, err := rt.reader.ReadFile(path)
	if err != nil {
		return regional.Series{}, err
	}

	total := rt.service.TotalCode()
	if geo == "" {
		geos := table.Geographies()
		if len(geos) != 1 {
			return table.Totals(total)
		}
		geo = geos[0]
	}
	return table.Series(geo, total)
}

// export writes every table as CSV and, when enabled, all of them into one
// workbook. Written paths are printed to the command output.
func (rt *session) export(cmd *cobra.Command, name string, tables ...exporter.Table) error {
	for _, t := range tables {
		path, err := rt.csv.WriteTable(t)
		if err != nil {
			return fmt.Errorf("write %s: %w", t.Name, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	if rt.cfg.Export.XLSX {
		path, err := rt.xlsx.WriteWorkbook(name+".xlsx", tables...)
		if err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
