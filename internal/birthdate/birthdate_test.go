package birthdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "slashes", in: "01/02/2000", want: "2000-02-01"},
		{name: "dashes day first", in: "01-02-2000", want: "2000-02-01"},
		{name: "canonical", in: "2000-02-01", want: "2000-02-01"},
		{name: "surrounding spaces", in: "  2000-02-01 ", want: "2000-02-01"},
		{name: "leap day", in: "29/02/2024", want: "2024-02-29"},
		{name: "not a leap year", in: "29/02/2023", wantErr: ErrInvalidDate},
		{name: "day and month out of range", in: "32-13-2020", wantErr: ErrInvalidDate},
		{name: "april 31st", in: "31/04/2020", wantErr: ErrInvalidDate},
		{name: "zero month", in: "2020-00-10", wantErr: ErrInvalidDate},
		{name: "american order with slashes is day first", in: "12/31/2020", wantErr: ErrInvalidDate},
		{name: "mixed separators", in: "01/02-2000", wantErr: ErrInvalidFormat},
		{name: "year first with slashes", in: "2000/02/01", wantErr: ErrInvalidFormat},
		{name: "letters", in: "aa/bb/cccc", wantErr: ErrInvalidFormat},
		{name: "signed number", in: "+1/02/2000", wantErr: ErrInvalidFormat},
		{name: "too short", in: "1/2/2000", wantErr: ErrInvalidFormat},
		{name: "iso datetime", in: "2000-02-01T00:00:00Z", wantErr: ErrInvalidFormat},
		{name: "empty", in: "", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"01/02/2000", "01-02-2000", "2000-02-01"} {
		once, err := Normalize(in)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, "2000-02-01", once)
		assert.Equal(t, once, twice)
	}
}

func TestFromTime_DoesNotShiftDays(t *testing.T) {
	t.Parallel()

	east := time.FixedZone("UTC+14", 14*60*60)
	west := time.FixedZone("UTC-12", -12*60*60)

	assert.Equal(t, "1990-01-02", FromTime(time.Date(1990, 1, 2, 0, 0, 0, 0, east)).String())
	assert.Equal(t, "1990-01-02", FromTime(time.Date(1990, 1, 2, 23, 59, 0, 0, west)).String())
	assert.Equal(t, "1990-01-02", FromTime(time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)).String())
}

func TestDate_After(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	today, err := Parse("17/10/2026")
	require.NoError(t, err)
	tomorrow, err := Parse("18/10/2026")
	require.NoError(t, err)

	assert.False(t, today.After(now))
	assert.True(t, tomorrow.After(now))
	assert.True(t, today.Equal(FromTime(now)))
}
