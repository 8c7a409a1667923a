package groups

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"kinomatch/internal/services"
)

// maxEnvelopeDepth bounds how many {"data": ...} wrappers DecodeRows unwraps.
const maxEnvelopeDepth = 2

type rowsEnvelope struct {
	Rows json.RawMessage `json:"rows"`
	Data json.RawMessage `json:"data"`
}

// DecodeRows decodes payload into rows. It accepts a bare JSON array, a
// {"rows": [...]} query result, or either of those wrapped in an API
// {"data": ...} envelope. Null and shapes without rows decode to an empty
// slice; malformed JSON is an error.
func DecodeRows[T any](payload []byte) ([]T, error) {
	rows, err := decodeRows[T](payload, 0)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "groups", "decode rows", "malformed payload", err)
	}
	return rows, nil
}

func decodeRows[T any](payload []byte, depth int) ([]T, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var rows []T
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	case '{':
		var envelope rowsEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		if isArray(envelope.Rows) {
			return decodeRows[T](envelope.Rows, depth)
		}
		if len(envelope.Data) > 0 && depth < maxEnvelopeDepth {
			return decodeRows[T](envelope.Data, depth+1)
		}
		return []T{}, nil
	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return []T{}, nil
	}
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Bundle is one group with its membership and showtime rows, as exported
// from the group service.
type Bundle struct {
	Group     GroupRecord     `json:"group"`
	Members   json.RawMessage `json:"members"`
	Showtimes json.RawMessage `json:"showtimes"`
	Users     []UserRecord    `json:"users,omitempty"`
}

// ReadBundles decodes a list of bundles (or a single bundle object) from r.
func ReadBundles(r io.Reader) ([]Bundle, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read group bundles: %w", err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single Bundle
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, services.Wrap(services.ErrValidation, "groups", "decode bundle", "malformed payload", err)
		}
		if single.Group.ID != 0 || single.Group.Name != "" {
			return []Bundle{single}, nil
		}
	}
	return DecodeRows[Bundle](trimmed)
}

// Summary decodes the bundle's rows and summarizes it for userID.
func (b Bundle) Summary(userID int64, reference time.Time) (GroupSummary, error) {
	memberRows, err := DecodeRows[MemberRow](b.Members)
	if err != nil {
		return GroupSummary{}, fmt.Errorf("group %d members: %w", b.Group.ID, err)
	}
	showtimeRows, err := DecodeRows[ShowtimeRow](b.Showtimes)
	if err != nil {
		return GroupSummary{}, fmt.Errorf("group %d showtimes: %w", b.Group.ID, err)
	}
	members := MembersFromRows(memberRows, b.Group.OwnerID, b.Users)
	summary := Summarize(b.Group, members, EventsFromRows(showtimeRows), userID, reference)
	if summary.OwnerName == "" {
		for _, user := range b.Users {
			if user.ID == b.Group.OwnerID {
				summary.OwnerName = user.Username
				break
			}
		}
	}
	return summary, nil
}
