package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Number
	}{
		{"number", `12.5`, Number{Float64: 12.5, Valid: true}},
		{"integer", `40`, Number{Float64: 40, Valid: true}},
		{"numeric string", `"99.99"`, Number{Float64: 99.99, Valid: true}},
		{"null", `null`, Number{}},
		{"empty string", `""`, Number{}},
		{"garbage string", `"abc"`, Number{}},
		{"object", `{}`, Number{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Number
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNumberOr(t *testing.T) {
	if got := Num(5).Or(1); got != 5 {
		t.Fatalf("got %v, want 5", got)
	}
	if got := (Number{}).Or(1); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestNumberScan(t *testing.T) {
	var n Number
	if err := n.Scan(int64(7)); err != nil {
		t.Fatalf("scan int64: %v", err)
	}
	if !n.Valid || n.Float64 != 7 {
		t.Fatalf("got %+v", n)
	}
	if err := n.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if n.Valid {
		t.Fatalf("expected invalid after nil scan, got %+v", n)
	}
}

func TestDateTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		valid bool
	}{
		{"rfc3339", `"2024-03-05T10:00:00Z"`, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"date only", `"2024-03-05"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"sql datetime", `"2024-03-05 10:00:00"`, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"not-a-date"`, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DateTime
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", tt.input, err)
			}
			if got.Valid != tt.valid {
				t.Fatalf("valid = %v, want %v", got.Valid, tt.valid)
			}
			if tt.valid && !got.Time.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got.Time, tt.want)
			}
		})
	}
}

func TestDateTimeMarshal(t *testing.T) {
	d := At(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-04-01T00:00:00Z"` {
		t.Fatalf("got %s", b)
	}
	b, err = json.Marshal(DateTime{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("got %s, want null", b)
	}
}
