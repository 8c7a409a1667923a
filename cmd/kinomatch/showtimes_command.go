package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kinomatch/internal/config"
	"kinomatch/internal/logging"
	"kinomatch/internal/schedule"
	"kinomatch/internal/textutil"
)

// scheduleFlags selects a schedule either from the configured source or from
// a saved payload.
type scheduleFlags struct {
	area string
	date string
	file string
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.area, "area", "", "Theatre area ID (defaults to schedule.area_id)")
	cmd.Flags().StringVar(&f.date, "date", "", "Show date: YYYY-MM-DD, DD.MM.YYYY, today or tomorrow")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read a saved JSON or XML schedule instead of fetching")
}

func (f *scheduleFlags) load(ctx context.Context, cc *commandContext, cfg *config.Config, logger *slog.Logger) ([]schedule.Showtime, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	area := textutil.Coalesce(strings.TrimSpace(f.area), cfg.Schedule.AreaID)

	if path := strings.TrimSpace(f.file); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve schedule file: %w", err)
		}
		payload, err := schedule.ReadFile(expanded)
		if err != nil {
			return nil, err
		}
		shows := schedule.NewNormalizer(loc).NormalizeAll(payload)
		logger.Debug("schedule file normalized",
			logging.String("path", expanded),
			logging.Int("showtimes", len(shows)))
		return shows, nil
	}

	date, err := parseDateFlag(f.date, time.Now(), loc)
	if err != nil {
		return nil, err
	}
	client, err := cc.scheduleClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return client.Showtimes(ctx, area, date)
}

func newShowtimesCommand(ctx *commandContext) *cobra.Command {
	var flags scheduleFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "showtimes",
		Short: "List normalized showtimes for a theatre area and date",
		Long: `Fetch the theatre schedule, normalize every show, and list them in start order.
Shows without a title or a parseable start time are dropped.

Examples:
  kinomatch showtimes --area 1014 --date tomorrow
  kinomatch showtimes --file schedule.xml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			shows, err := flags.load(cmd.Context(), ctx, cfg, logger)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, shows)
			}

			out := cmd.OutOrStdout()
			if len(shows) == 0 {
				fmt.Fprintln(out, "No showtimes found")
				return nil
			}
			loc, _ := cfg.Location()
			fmt.Fprintln(out, renderTable(
				[]string{"Start", "Title", "Theatre", "Length", "Year", "ID"},
				showtimeRows(shows, loc),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func showtimeRows(shows []schedule.Showtime, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(shows))
	for _, show := range shows {
		rows = append(rows, []string{
			formatStart(show.Start, loc),
			showTitle(show),
			theatreLabel(show),
			formatLength(show.LengthInMinutes),
			formatYear(show.Year()),
			show.ID,
		})
	}
	return rows
}

func formatStart(start time.Time, loc *time.Location) string {
	if loc != nil {
		start = start.In(loc)
	}
	return start.Format("Mon 02.01. 15:04")
}

func showTitle(show schedule.Showtime) string {
	title := show.Title
	if show.OriginalTitle != "" && !strings.EqualFold(show.OriginalTitle, show.Title) {
		title += " (" + show.OriginalTitle + ")"
	}
	return title
}

func theatreLabel(show schedule.Showtime) string {
	if show.Auditorium == "" {
		return show.Theatre
	}
	return show.Theatre + ", " + show.Auditorium
}

func formatLength(minutes *int) string {
	if minutes == nil {
		return ""
	}
	return textutil.FormatDuration(*minutes)
}

func formatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
