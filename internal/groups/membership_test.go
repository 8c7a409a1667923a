package groups_test

import (
	"testing"

	"kinomatch/internal/groups"
)

func TestResolveMembershipStatus(t *testing.T) {
	members := []groups.MembershipRecord{
		{UserID: 1, Accepted: false, IsOwner: true},
		{UserID: 2, Accepted: true},
		{UserID: 3, Accepted: false},
	}

	tests := []struct {
		name    string
		members []groups.MembershipRecord
		userID  int64
		want    groups.MembershipStatus
	}{
		{name: "owner wins over acceptance", members: members, userID: 1, want: groups.StatusOwner},
		{name: "accepted member", members: members, userID: 2, want: groups.StatusMember},
		{name: "pending invite", members: members, userID: 3, want: groups.StatusInvited},
		{name: "not a member", members: members, userID: 42, want: groups.StatusUnknown},
		{name: "no viewer", members: members, userID: 0, want: groups.StatusUnknown},
		{name: "empty list", members: nil, userID: 1, want: groups.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := groups.ResolveMembershipStatus(tt.members, tt.userID); got != tt.want {
				t.Fatalf("ResolveMembershipStatus(..., %d) = %q, want %q", tt.userID, got, tt.want)
			}
		})
	}
}

func TestMembersFromRowsMarksOwner(t *testing.T) {
	rows := []groups.MemberRow{
		{ID: 10, GroupID: 5, UserID: 7, Accepted: true},
		{ID: 11, GroupID: 5, UserID: 8, Accepted: false},
	}
	users := []groups.UserRecord{{ID: 7, Username: "aino", Email: "aino@example.fi"}}

	members := groups.MembersFromRows(rows, 7, users)
	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}
	if !members[0].IsOwner || members[0].Username != "aino" {
		t.Fatalf("owner record = %+v", members[0])
	}
	if members[1].IsOwner || members[1].Username != "" {
		t.Fatalf("second record = %+v", members[1])
	}
}

func TestParseMembershipStatus(t *testing.T) {
	for input, want := range map[string]groups.MembershipStatus{
		"":        "",
		"all":     "",
		" Owner ": groups.StatusOwner,
		"invited": groups.StatusInvited,
		"MEMBER":  groups.StatusMember,
		"unknown": groups.StatusUnknown,
	} {
		got, err := groups.ParseMembershipStatus(input)
		if err != nil {
			t.Fatalf("ParseMembershipStatus(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMembershipStatus(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := groups.ParseMembershipStatus("admin"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
