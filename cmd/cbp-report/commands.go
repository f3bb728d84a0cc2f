package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cbpmetrics/internal/config"
	"cbpmetrics/internal/exporter"
	"cbpmetrics/internal/regional"
)

type pairFlags struct {
	small, smallGeo string
	large, largeGeo string
}

func (f *pairFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.small, "small", "", "extract of the smaller region")
	cmd.Flags().StringVar(&f.smallGeo, "small-geo", "", "geography to take from --small")
	cmd.Flags().StringVar(&f.large, "large", "", "extract of the larger region")
	cmd.Flags().StringVar(&f.largeGeo, "large-geo", "", "geography to take from --large")
	_ = cmd.MarkFlagRequired("small")
	_ = cmd.MarkFlagRequired("large")
}

func (f *pairFlags) load(rt *session) (small, large regional.Series, err error) {
	if small, err = rt.loadSeries(f.small, f.smallGeo); err != nil {
		return
	}
	large, err = rt.loadSeries(f.large, f.largeGeo)
	return
}

func newLocationQuotientCmd(rt *session) *cobra.Command {
	f := &pairFlags{}
	cmd := &cobra.Command{
		Use:   "lq",
		Short: "Location quotient of a small region against a large one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			small, large, err := f.load(rt)
			if err != nil {
				return err
			}
			res, err := rt.service.LocationQuotient(cmd.Context(), small, large)
			if err != nil {
				return err
			}
			return rt.export(cmd, "location_quotient", exporter.LocationQuotientTable(res))
		},
	}
	f.bind(cmd)
	return cmd
}

func newTableLocationQuotientCmd(rt *session) *cobra.Command {
	var data, reference, referenceGeo, level string
	cmd := &cobra.Command{
		Use:   "lq-table",
		Short: "Location quotient of every geography in an extract",
		Long: `Computes the location quotient of every row of an extract. Each geography is
anchored on its own total row. The reference defaults to the sum of all
geographies in the extract.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := rt.reader.ReadFile(data)
			if err != nil {
				return err
			}

			switch level {
			case "":
				table = rt.service.SelectLevel(table)
			case config.LevelAll:
			case config.LevelTwoDigit:
				table = table.TwoDigit()
			case config.LevelThreeDigit:
				table = table.ThreeDigit()
			default:
				return fmt.Errorf("invalid industry level %q", level)
			}

			var ref *regional.Series
			if reference != "" {
				s, err := rt.loadSeries(reference, referenceGeo)
				if err != nil {
					return err
				}
				ref = &s
			}

			rows, err := rt.service.TableLocationQuotient(cmd.Context(), table, ref)
			if err != nil {
				return err
			}
			return rt.export(cmd, "location_quotient_table", exporter.GeoQuotientTable(rows))
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "extract with one or more geographies")
	cmd.Flags().StringVar(&reference, "reference", "", "extract of the reference region")
	cmd.Flags().StringVar(&referenceGeo, "reference-geo", "", "geography to take from --reference")
	cmd.Flags().StringVar(&level, "level", "", "industry level: all, two_digit or three_digit (defaults to analysis.industry_level)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newShiftShareCmd(rt *session) *cobra.Command {
	var smallOld, smallNew, largeOld, largeNew, smallGeo, largeGeo string
	cmd := &cobra.Command{
		Use:   "shift-share",
		Short: "Shift-share decomposition of local growth between two years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			series := make([]regional.Series, 4)
			for i, in := range []struct{ path, geo string }{
				{smallOld, smallGeo}, {smallNew, smallGeo}, {largeOld, largeGeo}, {largeNew, largeGeo},
			} {
				s, err := rt.loadSeries(in.path, in.geo)
				if err != nil {
					return err
				}
				series[i] = s
			}

			res, err := rt.service.ShiftShare(cmd.Context(), series[0], series[1], series[2], series[3])
			if err != nil {
				return err
			}
			detail, summary := exporter.ShiftShareTables(res)
			return rt.export(cmd, "shift_share", detail, summary)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&smallOld, "small-old", "", "small region, base year")
	flags.StringVar(&smallNew, "small-new", "", "small region, final year")
	flags.StringVar(&largeOld, "large-old", "", "large region, base year")
	flags.StringVar(&largeNew, "large-new", "", "large region, final year")
	flags.StringVar(&smallGeo, "small-geo", "", "geography to take from the small region files")
	flags.StringVar(&largeGeo, "large-geo", "", "geography to take from the large region files")
	for _, name := range []string{"small-old", "small-new", "large-old", "large-new"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newSpecializationCmd(rt *session) *cobra.Command {
	f := &pairFlags{}
	cmd := &cobra.Command{
		Use:   "specialization",
		Short: "Specialization coefficient of a small region against a large one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			small, large, err := f.load(rt)
			if err != nil {
				return err
			}
			res, err := rt.service.Specialization(cmd.Context(), small, large)
			if err != nil {
				return err
			}
			return rt.export(cmd, "specialization", exporter.SpecializationTable(res))
		},
	}
	f.bind(cmd)
	return cmd
}
