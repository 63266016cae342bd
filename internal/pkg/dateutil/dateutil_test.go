package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "canonical", in: "2026-01-01"},
		{name: "leap day", in: "2028-02-29"},
		{name: "not padded", in: "2026-1-1", wantErr: true},
		{name: "impossible day", in: "2026-02-30", wantErr: true},
		{name: "timestamp", in: "2026-01-01T00:00:00Z", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	d, err := AddDays("2026-12-30", 3)
	require.NoError(t, err)
	assert.Equal(t, "2027-01-02", d)

	n, err := DaysBetween("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = DaysBetween("2026-03-01", "2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"2026-03-02", "2026-01-05", "2026-03-02", "2026-01-05"})
	assert.Equal(t, []string{"2026-01-05", "2026-03-02"}, got)
	assert.Empty(t, Normalize(nil))
}

func TestMonth(t *testing.T) {
	m, err := Month("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = Month("2026-12-01")
	require.NoError(t, err)
	assert.Equal(t, 11, m)
}

func TestClocks(t *testing.T) {
	assert.Equal(t, "2026-01-01", FixedClock("2026-01-01").Today())

	today := SystemClock{Location: time.UTC}.Today()
	assert.True(t, Valid(today))
}
