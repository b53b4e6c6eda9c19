package scheduling

import (
	"math/rand"
	"testing"

	"asdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIntervals_Boundaries(t *testing.T) {
	tests := []struct {
		name              string
		start, end        string
		interval, breakMs int
		want              []models.Interval
	}{
		{
			name: "exact fit", start: "09:00", end: "09:30", interval: 30, breakMs: 5,
			want: []models.Interval{{Start: "09:00", End: "09:30"}},
		},
		{
			name: "interval does not fit", start: "09:00", end: "09:25", interval: 30, breakMs: 5,
			want: []models.Interval{},
		},
		{
			name: "second interval would overrun", start: "09:00", end: "10:00", interval: 30, breakMs: 5,
			want: []models.Interval{{Start: "09:00", End: "09:30"}},
		},
		{
			name: "last interval ends on end time", start: "09:00", end: "10:05", interval: 30, breakMs: 5,
			want: []models.Interval{{Start: "09:00", End: "09:30"}, {Start: "09:35", End: "10:05"}},
		},
		{
			name: "back to back", start: "14:00", end: "15:30", interval: 30, breakMs: 0,
			want: []models.Interval{
				{Start: "14:00", End: "14:30"},
				{Start: "14:30", End: "15:00"},
				{Start: "15:00", End: "15:30"},
			},
		},
		{
			name: "inverted window", start: "17:00", end: "09:00", interval: 30, breakMs: 5,
			want: []models.Interval{},
		},
		{
			name: "empty window", start: "09:00", end: "09:00", interval: 30, breakMs: 5,
			want: []models.Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateIntervals(tt.start, tt.end, tt.interval, tt.breakMs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateIntervals_InvalidInput(t *testing.T) {
	_, err := GenerateIntervals("09:00", "10:00", 0, 5)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = GenerateIntervals("09:00", "10:00", 30, -1)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = GenerateIntervals("9am", "10:00", 30, 5)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = GenerateIntervals("09:00", "24:00", 30, 5)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestWindowProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		start := ClockTime(rng.Intn(23 * 60))
		end := start + ClockTime(1+rng.Intn(24*60-1-int(start)))
		w := Window{Start: start, End: end, Interval: 1 + rng.Intn(120), Break: rng.Intn(60)}

		got, err := w.Intervals()
		require.NoError(t, err)
		require.Len(t, got, w.Count(), "closed form and iteration disagree for %+v", w)

		var prevEnd ClockTime = -1
		for j, iv := range got {
			s, err := ParseClock(iv.Start)
			require.NoError(t, err)
			e, err := ParseClock(iv.End)
			require.NoError(t, err)

			assert.Equal(t, w.Interval, int(e-s), "length")
			assert.LessOrEqual(t, e, w.End, "end within window")
			if j == 0 {
				assert.Equal(t, w.Start, s)
			} else {
				assert.Equal(t, w.Break, int(s-prevEnd), "gap")
			}
			prevEnd = e
		}

		// Leftover time must be too short for another interval.
		if len(got) > 0 {
			assert.Greater(t, int(prevEnd)+w.Break+w.Interval, int(w.End))
		}

		again, err := w.Intervals()
		require.NoError(t, err)
		assert.Equal(t, got, again, "idempotent")
	}
}

func TestExpandSlot(t *testing.T) {
	slot := models.Slot{StartTime: "10:00", EndTime: "11:00", IntervalMinutes: 45, BreakTimeMinutes: 15}
	got, err := Expand(slot)
	require.NoError(t, err)
	assert.Equal(t, []models.Interval{{Start: "10:00", End: "10:45"}}, got)
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "00:00", ClockTime(0).String())
	assert.Equal(t, "09:05", ClockTime(545).String())
	assert.Equal(t, "23:59", ClockTime(1439).String())
}
