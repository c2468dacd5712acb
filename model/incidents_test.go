package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidIncidentPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidIncidentPriority(IncidentPriorityHigh))
	assert.True(t, ValidIncidentPriority(IncidentPriorityMedium))
	assert.True(t, ValidIncidentPriority(IncidentPriorityLow))
	assert.False(t, ValidIncidentPriority("dringend"))
	assert.False(t, ValidIncidentPriority(""))
}

func TestValidIncidentStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidIncidentStatus(IncidentStatusOpen))
	assert.True(t, ValidIncidentStatus(IncidentStatusInProgress))
	assert.True(t, ValidIncidentStatus(IncidentStatusClosed))
	assert.False(t, ValidIncidentStatus("erledigt"))
	assert.False(t, ValidIncidentStatus(""))
}

func TestCoordinates_ValueScan(t *testing.T) {
	t.Parallel()

	c := Coordinates{Lat: 52.52, Lng: 13.405}
	v, err := c.Value()
	require.NoError(t, err)

	var got Coordinates
	require.NoError(t, got.Scan(v))
	assert.Equal(t, c, got)

	require.NoError(t, got.Scan(`{"lat":48.14,"lng":11.58}`))
	assert.Equal(t, Coordinates{Lat: 48.14, Lng: 11.58}, got)

	assert.Error(t, new(Coordinates).Scan(42))
}

func TestStringArray_ValueScan(t *testing.T) {
	t.Parallel()

	var nilArr StringArray
	v, err := nilArr.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v.([]byte)))

	var got StringArray
	require.NoError(t, got.Scan(`["a","b"]`))
	assert.Equal(t, StringArray{"a", "b"}, got)
}
