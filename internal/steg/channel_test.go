package steg

import (
	"encoding/json"
	"testing"
)

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		want    Channel
		wantErr bool
	}{
		{"", Red, false},
		{"R", Red, false},
		{"r", Red, false},
		{"red", Red, false},
		{"G", Green, false},
		{" green ", Green, false},
		{"B", Blue, false},
		{"Blue", Blue, false},
		{"ALL", All, false},
		{"all", All, false},
		{"RGB", 0, true},
		{"A", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChannel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseChannel(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChannel(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseChannel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestChannel_Indices(t *testing.T) {
	tests := []struct {
		ch   Channel
		want []int
	}{
		{Red, []int{0}},
		{Green, []int{1}},
		{Blue, []int{2}},
		{All, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		got := tt.ch.Indices()
		if len(got) != len(tt.want) {
			t.Fatalf("%v.Indices(): got %v, want %v", tt.ch, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.Indices(): got %v, want %v", tt.ch, got, tt.want)
			}
		}
	}

	if Channel(5).Indices() != nil {
		t.Error("unknown channel should have no indices")
	}
}

func TestChannel_JSON(t *testing.T) {
	var v struct {
		Channel Channel `json:"channel"`
	}
	if err := json.Unmarshal([]byte(`{"channel":"all"}`), &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v.Channel != All {
		t.Errorf("Channel: got %v, want ALL", v.Channel)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"channel":"ALL"}` {
		t.Errorf("Marshal: got %s", data)
	}

	if err := json.Unmarshal([]byte(`{"channel":"alpha"}`), &v); err == nil {
		t.Error("Unmarshal should reject an unknown channel")
	}
}

func TestRaster_Clone(t *testing.T) {
	r, err := NewRaster(2, 3)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	r.Set(1, 2, 1, 77)

	c := r.Clone()
	c.Set(1, 2, 1, 78)

	if r.At(1, 2, 1) != 77 {
		t.Error("Clone shares storage with the original")
	}
	if c.Height != 2 || c.Width != 3 {
		t.Errorf("Clone dimensions: got %dx%d", c.Width, c.Height)
	}
}

func TestNewRaster_Invalid(t *testing.T) {
	if _, err := NewRaster(-1, 4); err == nil {
		t.Error("NewRaster should reject negative height")
	}
}
