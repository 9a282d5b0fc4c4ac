package domain

import (
	"encoding/json"
	"testing"
)

func TestUserRefUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `5`, 5},
		{"string", `"5"`, 5},
		{"populated object", `{"id": 5, "name": "Alice", "email": "a@example.com"}`, 5},
		{"object with string id", `{"id": "5"}`, 5},
		{"empty string", `""`, 0},
		{"junk string", `"abc"`, 0},
		{"object without id", `{"name": "Alice"}`, 0},
		{"null", `null`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r UserRef
			if err := json.Unmarshal([]byte(tc.in), &r); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if r.ID != tc.want {
				t.Errorf("got id %d; want %d", r.ID, tc.want)
			}
		})
	}
}

func TestRefIDsDropsEmpties(t *testing.T) {
	var refs []UserRef
	if err := json.Unmarshal([]byte(`["2", "", 3, {"id": 4}, "junk"]`), &refs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := RefIDs(refs)
	want := []int64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
}
