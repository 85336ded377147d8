package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habitual/internal/errors"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDay("03/10/2024")
	assert.Error(t, err)
}

func TestNormalizeDay(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 5, 10, 23, 30, 0, 0, time.Local) }

	got, err := NormalizeDay("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", got)

	got, err = NormalizeDay("2024-02-29", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	_, err = NormalizeDay("2023-02-29", now)
	assert.True(t, apperrors.IsValidation(err))

	_, err = NormalizeDay("05/10/2024", now)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddDaysAcrossMonth(t *testing.T) {
	d, err := ParseDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", AddDays(d, -1))
	assert.Equal(t, "2024-02-24", AddDays(d, -6))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.config/habitual/habitual.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/habitual/habitual.db"), got)

	got, err = ExpandHome("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}
