package groups

import (
	"fmt"
	"strings"
)

// MembershipStatus is the viewer's relationship to a group.
type MembershipStatus string

const (
	StatusOwner   MembershipStatus = "owner"
	StatusMember  MembershipStatus = "member"
	StatusInvited MembershipStatus = "invited"
	StatusUnknown MembershipStatus = "unknown"
)

// MembershipRecord is one member of a group as seen by the viewer.
type MembershipRecord struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Accepted bool   `json:"accepted"`
	IsOwner  bool   `json:"isOwner"`
}

// MemberRow is a group membership row as stored by the group service.
type MemberRow struct {
	ID        int64  `json:"id"`
	GroupID   int64  `json:"group_id"`
	UserID    int64  `json:"user_id"`
	Accepted  bool   `json:"accepted"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserRecord carries the profile fields used to label members.
type UserRecord struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ResolveMembershipStatus returns the status of userID within members. A
// zero userID means no viewer and yields StatusUnknown, as does a viewer with
// no record. Ownership takes priority over acceptance.
func ResolveMembershipStatus(members []MembershipRecord, userID int64) MembershipStatus {
	if userID == 0 {
		return StatusUnknown
	}
	for _, member := range members {
		if member.UserID != userID {
			continue
		}
		switch {
		case member.IsOwner:
			return StatusOwner
		case member.Accepted:
			return StatusMember
		default:
			return StatusInvited
		}
	}
	return StatusUnknown
}

// MembersFromRows converts stored rows into membership records, marking the
// owner and attaching profile fields from users when available.
func MembersFromRows(rows []MemberRow, ownerID int64, users []UserRecord) []MembershipRecord {
	profiles := make(map[int64]UserRecord, len(users))
	for _, user := range users {
		profiles[user.ID] = user
	}
	members := make([]MembershipRecord, 0, len(rows))
	for _, row := range rows {
		profile := profiles[row.UserID]
		members = append(members, MembershipRecord{
			UserID:   row.UserID,
			Username: profile.Username,
			Email:    profile.Email,
			Accepted: row.Accepted,
			IsOwner:  ownerID != 0 && row.UserID == ownerID,
		})
	}
	return members
}

// ParseMembershipStatus parses a status filter value. The empty string and
// "all" return an empty status, which FilterByStatus treats as no filter.
func ParseMembershipStatus(value string) (MembershipStatus, error) {
	switch status := MembershipStatus(strings.ToLower(strings.TrimSpace(value))); status {
	case "", "all":
		return "", nil
	case StatusOwner, StatusMember, StatusInvited, StatusUnknown:
		return status, nil
	default:
		return "", fmt.Errorf("unknown membership status %q (want owner, member, invited, unknown or all)", value)
	}
}
