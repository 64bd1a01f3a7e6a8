package leave

import (
	"errors"
	"testing"
)

func TestCheckDateOrder(t *testing.T) {
	tests := []struct {
		start, end string
		want       error
	}{
		{"2024-01-01", "2024-01-05", nil},
		{"2024-01-05", "2024-01-05", nil},
		{"2024-01-05", "2024-01-01", ErrEndBeforeStart},
		{"", "2024-01-01", nil},
		{"2024-01-05", "not-a-date", nil},
		{"2024-01-05T00:00:00.000Z", "2024-01-04T00:00:00.000Z", ErrEndBeforeStart},
	}

	for _, tt := range tests {
		if got := CheckDateOrder(tt.start, tt.end); !errors.Is(got, tt.want) {
			t.Errorf("CheckDateOrder(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}
