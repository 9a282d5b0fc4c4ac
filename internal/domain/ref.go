package domain

import (
	"encoding/json"
	"strconv"
)

// UserRef is a user reference as it appears in client payloads and stored
// records: sometimes a bare id (number or string), sometimes a populated
// user object. It always normalizes to the canonical int64 id; heterogeneous
// forms are never compared directly.
type UserRef struct {
	ID int64
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	// bare number
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		r.ID = n
		return nil
	}

	// bare string id; empty or junk normalizes to zero and is dropped later
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			r.ID = 0
			return nil
		}
		r.ID = n
		return nil
	}

	// populated object
	var obj struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if len(obj.ID) == 0 {
		r.ID = 0
		return nil
	}
	var nested UserRef
	if err := nested.UnmarshalJSON(obj.ID); err != nil {
		return err
	}
	r.ID = nested.ID
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// RefIDs normalizes a list of references to ids, dropping empty entries.
// Duplicates are kept; set semantics are the caller's concern.
func RefIDs(refs []UserRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		if r.ID == 0 {
			continue
		}
		ids = append(ids, r.ID)
	}
	return ids
}
