package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) statsCommand() *cobra.Command {
	var (
		floorID   string
		available bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show occupancy statistics for the stored layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, closeLog, err := c.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := openApp(ctx, c.cfg, "", logger)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.layout.Open(ctx); err != nil {
				return err
			}

			stats, err := a.layout.Stats(ctx, floorID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !available {
				if asJSON {
					return json.NewEncoder(out).Encode(stats)
				}
				fmt.Fprintf(out, "tables:    %d\n", stats.Tables)
				fmt.Fprintf(out, "capacity:  %d\n", stats.Capacity)
				fmt.Fprintf(out, "occupied:  %d\n", stats.Occupied)
				fmt.Fprintf(out, "occupancy: %d%%\n", stats.OccupancyRate)
				fmt.Fprintf(out, "status:    %d empty, %d partial, %d full\n", stats.Empty, stats.Partial, stats.Full)
				return nil
			}

			tables, err := a.layout.Available(ctx, floorID)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(out).Encode(tables)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFLOOR\tNAME\tFREE")
			for _, t := range tables {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", t.ID, t.FloorID, t.Name, t.MaxOccupancy()-t.Occupied)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&floorID, "floor", "f", "", "limit to one floor")
	cmd.Flags().BoolVar(&available, "available", false, "list tables open to walk-ins instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
