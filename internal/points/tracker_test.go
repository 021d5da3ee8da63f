package points

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data   map[string]string
	getErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) GetPref(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) SetPref(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) DeletePref(key string) error {
	delete(m.data, key)
	return nil
}

func TestTrackerLoadsBest(t *testing.T) {
	store := newMemStore()
	store.data["mindgrid.best"] = "512"

	tr, err := NewTracker("mindgrid", store)
	require.NoError(t, err)
	assert.Equal(t, 512, tr.Best())
	assert.Equal(t, 0, tr.Score())
}

func TestTrackerAddRaisesBest(t *testing.T) {
	store := newMemStore()
	tr, err := NewTracker("mindgrid", store)
	require.NoError(t, err)

	require.NoError(t, tr.Add(8))
	require.NoError(t, tr.Add(16))
	assert.Equal(t, 24, tr.Score())
	assert.Equal(t, 24, tr.Best())
	assert.Equal(t, "24", store.data["mindgrid.best"])

	tr.ResetRun()
	require.NoError(t, tr.Add(4))
	assert.Equal(t, 4, tr.Score())
	assert.Equal(t, 24, tr.Best(), "lower run must not lower best")
	assert.Equal(t, "24", store.data["mindgrid.best"])
}

func TestTrackerClampsAtZero(t *testing.T) {
	tr, err := NewTracker("mindgrid", nil)
	require.NoError(t, err)

	require.NoError(t, tr.Add(-10))
	assert.Equal(t, 0, tr.Score())

	require.NoError(t, tr.Set(-3))
	assert.Equal(t, 0, tr.Score())
	assert.Equal(t, 0, tr.Best())
}

func TestTrackerResetAll(t *testing.T) {
	store := newMemStore()
	tr, err := NewTracker("mindgrid_5x5", store)
	require.NoError(t, err)
	require.NoError(t, tr.Set(100))

	require.NoError(t, tr.ResetAll())
	assert.Equal(t, 0, tr.Score())
	assert.Equal(t, 0, tr.Best())
	_, ok := store.data["mindgrid_5x5.best"]
	assert.False(t, ok)
}

func TestTrackerLoadErrors(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk gone")
	_, err := NewTracker("mindgrid", store)
	require.Error(t, err)

	bad := newMemStore()
	bad.data["mindgrid.best"] = "lots"
	_, err = NewTracker("mindgrid", bad)
	require.Error(t, err)
}
