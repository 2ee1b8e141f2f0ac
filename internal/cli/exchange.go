package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/exchange"
	"github.com/spf13/cobra"
)

func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored layout with a layout file",
		Long: `Replace the stored layout with the rows of a layout file.

Rows repeating an earlier table_id are skipped. A crop block at the top of
the file becomes the background crop of the default floor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, closeLog, err := c.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()
			file, err := exchange.Read(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := openApp(ctx, c.cfg, editor.ModeBusiness, logger)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.layout.Open(ctx); err != nil {
				return err
			}

			res, err := a.layout.Import(ctx, file.Records)
			if err != nil {
				return err
			}
			if file.Crop != nil {
				if _, err := a.floors.SaveCrop(ctx, c.cfg.Layout.DefaultFloor, *file.Crop); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d items\n", len(res.Snapshot.Items))
			if res.Change != nil && len(res.Change.Removed) > 0 {
				fmt.Fprintf(out, "removed %d items\n", len(res.Change.Removed))
			}
			for _, id := range res.Skipped {
				fmt.Fprintf(out, "skipped duplicate %s\n", id)
			}
			if file.Crop != nil {
				fmt.Fprintf(out, "crop saved for floor %s\n", c.cfg.Layout.DefaultFloor)
			}
			return nil
		},
	}
}

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored layout as a layout file",
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

			records, err := a.layout.Export(ctx)
			if err != nil {
				return err
			}
			settings, err := a.floors.Get(ctx, c.cfg.Layout.DefaultFloor)
			if err != nil {
				return err
			}
			file := exchange.File{Records: records}
			if !settings.Crop.IsZero() {
				file.Crop = &settings.Crop
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				if err := ensureDir(output); err != nil {
					return err
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := exchange.Write(w, file); err != nil {
				return err
			}
			logger.Info("layout exported", "items", len(records), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
