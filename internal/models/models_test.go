package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeJSON(t *testing.T) {
	moment := time.Date(2026, 8, 29, 15, 4, 5, 0, time.Local)

	data, err := json.Marshal(NewLocalTime(moment))
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-29T15:04:05"`, string(data))

	var parsed LocalTime
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(moment))
}

func TestLocalTimeJSONZeroAndNull(t *testing.T) {
	data, err := json.Marshal(LocalTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var parsed LocalTime
	require.NoError(t, json.Unmarshal([]byte("null"), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestLocalTimeFractionalSeconds(t *testing.T) {
	var parsed LocalTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-29T15:04:05.123456789"`), &parsed))
	assert.Equal(t, 2026, parsed.Year())
}

func TestLocalTimeRejectsGarbage(t *testing.T) {
	var parsed LocalTime
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &parsed))
	assert.Error(t, json.Unmarshal([]byte(`"2026-08-29"`), &parsed))
}

func TestKnownState(t *testing.T) {
	for _, state := range []string{StateAll, StateCurrent, StateFuture, StatePast, StateWaiting, StateRejected} {
		assert.True(t, KnownState(state), state)
	}
	assert.False(t, KnownState("UNSUPPORTED_STATUS"))
	assert.False(t, KnownState(""))
	assert.False(t, KnownState("all"))
}
