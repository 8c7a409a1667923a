package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kinomatch/internal/textutil"
)

func newAreasCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "areas",
		Short: "List selectable theatre areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			client, err := ctx.scheduleClient(cfg, logger)
			if err != nil {
				return err
			}

			areas, err := client.TheatreAreas(cmd.Context())
			if err != nil {
				return err
			}
			for i := range areas {
				areas[i].Name = displayAreaName(areas[i].Name)
			}
			if jsonOutput {
				return writeJSON(cmd, areas)
			}

			out := cmd.OutOrStdout()
			if len(areas) == 0 {
				fmt.Fprintln(out, "No theatre areas found")
				return nil
			}
			rows := make([][]string, 0, len(areas))
			for _, area := range areas {
				rows = append(rows, []string{area.ID, area.Name, textutil.Ternary(area.ID == cfg.Schedule.AreaID, "*", "")})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Default"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// displayAreaName title-cases each colon-separated segment that the source
// publishes in capitals.
func displayAreaName(name string) string {
	parts := strings.Split(name, ":")
	for i, part := range parts {
		parts[i] = textutil.TitleCase(part)
	}
	return strings.Join(parts, ": ")
}

