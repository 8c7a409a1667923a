package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kinomatch/internal/catalog"
	"kinomatch/internal/config"
	"kinomatch/internal/logging"
	"kinomatch/internal/matching"
	"kinomatch/internal/schedule"
)

type matchedShowtime struct {
	Showtime  schedule.Showtime `json:"showtime"`
	Match     matching.Result   `json:"match"`
	PosterURL string            `json:"posterUrl,omitempty"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var flags scheduleFlags
	var titleFilter string
	var jsonOutput bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Link showtimes to catalog entries",
		Long: `Fetch and normalize the schedule, then resolve every showtime against the
match service, falling back to a TMDB title search when enabled. Showings
of the same event share one match-service lookup.

Examples:
  kinomatch match --area 1014 --date today
  kinomatch match --file schedule.json --title dune --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			lookup, search, err := ctx.matchSources(cfg, logger)
			if err != nil {
				return err
			}

			shows, err := flags.load(cmd.Context(), ctx, cfg, logger)
			if err != nil {
				return err
			}
			shows = filterByTitle(shows, titleFilter)

			session := matching.NewSession(lookup, search,
				matching.WithLogger(logger),
				matching.WithConcurrency(cfg.Matching.Concurrency),
			)
			defer session.Close()

			ids := make([]string, 0, len(shows))
			for _, show := range shows {
				ids = append(ids, show.ID)
			}
			session.Select(ids)

			runCtx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, timeout)
				defer cancel()
			}
			results := session.MatchAll(runCtx, shows)

			matched := make([]matchedShowtime, 0, len(shows))
			summary := map[matching.Status]int{}
			for _, show := range shows {
				result := results[show.ID]
				summary[result.Status]++
				matched = append(matched, matchedShowtime{
					Showtime:  show,
					Match:     result,
					PosterURL: posterURL(cfg, result),
				})
			}
			logger.Info("match run complete",
				logging.String(logging.FieldSessionID, session.ID()),
				logging.Int("showtimes", len(shows)),
				logging.Int("matched", summary[matching.StatusSuccess]),
				logging.Int("unmatched", summary[matching.StatusEmpty]),
				logging.Int("failed", summary[matching.StatusError]),
			)

			if jsonOutput {
				return writeJSON(cmd, matched)
			}

			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, "No showtimes found")
				return nil
			}
			loc, _ := cfg.Location()
			fmt.Fprintln(out, renderTable(
				[]string{"Start", "Showtime", "Status", "Catalog", "Rating", "Details"},
				matchRows(matched, loc),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d matched, %d unmatched, %d failed\n",
				summary[matching.StatusSuccess], summary[matching.StatusEmpty], summary[matching.StatusError])
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&titleFilter, "title", "t", "", "Only match showtimes whose title contains this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit for catalog lookups (0 disables)")
	return cmd
}

func filterByTitle(shows []schedule.Showtime, filter string) []schedule.Showtime {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return shows
	}
	out := make([]schedule.Showtime, 0, len(shows))
	for _, show := range shows {
		if strings.Contains(strings.ToLower(show.Title), filter) ||
			strings.Contains(strings.ToLower(show.OriginalTitle), filter) {
			out = append(out, show)
		}
	}
	return out
}

func posterURL(cfg *config.Config, result matching.Result) string {
	if result.Status != matching.StatusSuccess || result.PosterPath == "" {
		return ""
	}
	return catalog.PosterURLWithBase(cfg.TMDB.ImageBaseURL, result.PosterPath, cfg.TMDB.PosterSize)
}

func matchRows(matched []matchedShowtime, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(matched))
	for _, m := range matched {
		result := m.Match
		catalogLabel := ""
		rating := ""
		details := result.Message
		if result.Status == matching.StatusSuccess {
			catalogLabel = result.Title
			if year := releaseYear(result.ReleaseDate); year != "" {
				catalogLabel += " (" + year + ")"
			}
			if result.Rating != nil {
				rating = strconv.FormatFloat(*result.Rating, 'f', 1, 64)
			}
			details = fmt.Sprintf("#%d via %s, %s", result.CandidateID, result.Source, result.Kind)
		}
		rows = append(rows, []string{
			formatStart(m.Showtime.Start, loc),
			m.Showtime.Title,
			string(result.Status),
			catalogLabel,
			rating,
			details,
		})
	}
	return rows
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
