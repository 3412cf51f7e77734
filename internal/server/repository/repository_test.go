package repository

import (
	"testing"

	"github.com/DenisKhanov/ClovaHome/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetMissing(t *testing.T) {
	r, err := NewRepository(2)
	require.NoError(t, err)

	state, ok := r.GetHomeState("nobody")
	assert.False(t, ok)
	assert.Equal(t, models.HomeState{}, state)
	assert.Equal(t, 0, r.Len())
}

func TestRepository_SaveAndGet(t *testing.T) {
	r, err := NewRepository(2)
	require.NoError(t, err)

	state := models.DefaultHomeState()
	state.LightOn = true
	r.SaveHomeState("u1", state)

	got, ok := r.GetHomeState("u1")
	require.True(t, ok)
	assert.Equal(t, state, got)
}

func TestRepository_CopiesDoNotAlias(t *testing.T) {
	r, err := NewRepository(2)
	require.NoError(t, err)

	state := models.DefaultHomeState()
	r.SaveHomeState("u1", state)
	state.RefrigeratorContents[0] = "milk"

	got, _ := r.GetHomeState("u1")
	assert.Equal(t, []string{"beer", "sausage"}, got.RefrigeratorContents)

	got.RefrigeratorContents[1] = "cheese"
	again, _ := r.GetHomeState("u1")
	assert.Equal(t, []string{"beer", "sausage"}, again.RefrigeratorContents)
}

func TestRepository_LastWriteWins(t *testing.T) {
	r, err := NewRepository(2)
	require.NoError(t, err)

	first := models.DefaultHomeState()
	second := models.DefaultHomeState()
	second.AirconOn = true
	r.SaveHomeState("u1", first)
	r.SaveHomeState("u1", second)

	got, _ := r.GetHomeState("u1")
	assert.True(t, got.AirconOn)
	assert.Equal(t, 1, r.Len())
}

func TestRepository_EvictsLeastRecentlyUsed(t *testing.T) {
	r, err := NewRepository(2)
	require.NoError(t, err)

	r.SaveHomeState("u1", models.DefaultHomeState())
	r.SaveHomeState("u2", models.DefaultHomeState())
	_, _ = r.GetHomeState("u1")
	r.SaveHomeState("u3", models.DefaultHomeState())

	_, ok := r.GetHomeState("u2")
	assert.False(t, ok)
	_, ok = r.GetHomeState("u1")
	assert.True(t, ok)
	_, ok = r.GetHomeState("u3")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestNewRepository_InvalidSize(t *testing.T) {
	_, err := NewRepository(0)
	assert.Error(t, err)
}
