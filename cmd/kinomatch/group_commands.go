package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"kinomatch/internal/config"
	"kinomatch/internal/groups"
)

func newGroupCommand(ctx *commandContext) *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Group scheduling utilities",
	}
	groupCmd.AddCommand(newGroupStatusCommand(ctx))
	return groupCmd
}

func newGroupStatusCommand(ctx *commandContext) *cobra.Command {
	var file string
	var userID int64
	var statusFilter string
	var reference string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize membership and the next showtime for exported groups",
		Long: `Read a group export (one bundle or a list of bundles with "group",
"members", "showtimes" and optional "users") and print each group's member
counts, the viewer's membership status, and the next scheduled showtime.

Examples:
  kinomatch group status --file groups.json --user 7
  kinomatch group status --file groups.json --user 7 --status invited --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			status, err := groups.ParseMembershipStatus(statusFilter)
			if err != nil {
				return err
			}
			refDate, err := parseDateFlag(reference, time.Now(), loc)
			if err != nil {
				return err
			}
			if refDate.IsZero() {
				refDate = time.Now().In(loc)
			}

			path, err := config.ExpandPath(file)
			if err != nil {
				return fmt.Errorf("resolve group file: %w", err)
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open group file: %w", err)
			}
			defer f.Close()

			bundles, err := groups.ReadBundles(f)
			if err != nil {
				return err
			}
			summaries := make([]groups.GroupSummary, 0, len(bundles))
			for _, bundle := range bundles {
				summary, err := bundle.Summary(userID, refDate)
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
			}
			groups.SortByName(summaries)
			summaries = groups.FilterByStatus(summaries, status)

			if jsonOutput {
				return writeJSON(cmd, summaries)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No groups found")
				return nil
			}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.Name,
					s.OwnerName,
					strconv.Itoa(s.MemberCount),
					strconv.Itoa(s.PendingMemberCount),
					string(s.MembershipStatus),
					nextShowtimeLabel(s.NextShowtime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Group", "Owner", "Members", "Pending", "Status", "Next showtime"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Group export JSON file")
	cmd.Flags().Int64Var(&userID, "user", 0, "Viewer user ID")
	cmd.Flags().StringVar(&statusFilter, "status", "all", "Filter by membership status: owner, member, invited, unknown or all")
	cmd.Flags().StringVar(&reference, "date", "", "Reference date for the next showtime (defaults to today)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func nextShowtimeLabel(event *groups.ScheduledEvent) string {
	if event == nil {
		return "none scheduled"
	}
	label := event.DateOfShow
	switch {
	case event.MatchTitle != "":
		label += " " + event.MatchTitle
	case event.FinnkinoID != "":
		label += " event " + event.FinnkinoID
	}
	if event.TheatreName != "" {
		label += " @ " + event.TheatreName
	}
	return label
}
