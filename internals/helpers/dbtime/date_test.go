package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.June, 1), d)

	d, err = ParseDate("2025-06-01T23:30:00-07:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.String())

	_, err = ParseDate("06/01/2025")
	assert.Error(t, err)
}

func TestDate_AddDaysCrossesMonths(t *testing.T) {
	d := MustParseDate("2025-06-01")
	assert.Equal(t, "2025-05-11", d.AddDays(-21).String())
	assert.Equal(t, "2025-06-08", d.AddDays(7).String())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start *Date `json:"start"`
		End   Date  `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-06-01","end":null}`), &payload))
	require.NotNil(t, payload.Start)
	assert.Equal(t, "2025-06-01", payload.Start.String())
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-06-01","end":null}`, string(out))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", v)

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
