package groups

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupRecord is a group row as stored by the group service.
type GroupRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"group_name"`
	OwnerID     int64  `json:"owner_id"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// GroupSummary is the list-view projection of one group for a viewer.
type GroupSummary struct {
	GroupID             int64            `json:"id"`
	Name                string           `json:"name"`
	OwnerID             int64            `json:"ownerId"`
	OwnerName           string           `json:"ownerName,omitempty"`
	MemberCount         int              `json:"memberCount"`
	AcceptedMemberCount int              `json:"acceptedMemberCount"`
	PendingMemberCount  int              `json:"pendingMemberCount"`
	MembershipStatus    MembershipStatus `json:"membershipStatus"`
	NextShowtime        *ScheduledEvent  `json:"nextShowtime,omitempty"`
}

// Summarize projects a group and its members and events for userID.
func Summarize(group GroupRecord, members []MembershipRecord, events []ScheduledEvent, userID int64, reference time.Time) GroupSummary {
	accepted := 0
	ownerName := ""
	for _, member := range members {
		if member.Accepted {
			accepted++
		}
		if member.UserID == group.OwnerID && ownerName == "" {
			ownerName = member.Username
		}
	}
	return GroupSummary{
		GroupID:             group.ID,
		Name:                group.Name,
		OwnerID:             group.OwnerID,
		OwnerName:           ownerName,
		MemberCount:         len(members),
		AcceptedMemberCount: accepted,
		PendingMemberCount:  len(members) - accepted,
		MembershipStatus:    ResolveMembershipStatus(members, userID),
		NextShowtime:        FindNextShowtime(events, reference),
	}
}

// FilterByStatus returns the summaries whose status equals status. An empty
// status returns every summary.
func FilterByStatus(summaries []GroupSummary, status MembershipStatus) []GroupSummary {
	if status == "" {
		return summaries
	}
	out := make([]GroupSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.MembershipStatus == status {
			out = append(out, summary)
		}
	}
	return out
}

// SortByName orders summaries by name using Finnish collation.
func SortByName(summaries []GroupSummary) {
	c := collate.New(language.Finnish, collate.IgnoreCase)
	slices.SortStableFunc(summaries, func(a, b GroupSummary) int {
		return c.CompareString(a.Name, b.Name)
	})
}
