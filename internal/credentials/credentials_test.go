package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore_SetGet(t *testing.T) {
	keyring.MockInit()
	store := NewStore("F04")

	require.NoError(t, store.Set("jdoe", "s3cret"))

	got, err := store.Get("jdoe")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	_, err = store.Get("someone")
	assert.True(t, errors.Is(err, ErrNoPassword))

	require.NoError(t, store.Delete("jdoe"))
	_, err = store.Get("jdoe")
	assert.True(t, errors.Is(err, ErrNoPassword))
}

func TestStore_RequiresFields(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, NewStore("").Set("jdoe", "x"))
	assert.Error(t, NewStore("F04").Set(" ", "x"))
	assert.Error(t, NewStore("F04").Set("jdoe", ""))

	_, err := NewStore("F04").Get("")
	assert.Error(t, err)
}

func TestUserFile(t *testing.T) {
	dir := t.TempDir()
	wb := filepath.Join(dir, "lodging.xlsx")

	t.Run("default when missing", func(t *testing.T) {
		user, err := LoadUser(wb)
		require.NoError(t, err)
		assert.Equal(t, DefaultUser, user)
	})

	t.Run("save requires the workbook", func(t *testing.T) {
		assert.Error(t, SaveUser(wb, "jdoe"))
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, os.WriteFile(wb, []byte("x"), 0o600))
		require.NoError(t, SaveUser(wb, "  jdoe \n"))

		user, err := LoadUser(wb)
		require.NoError(t, err)
		assert.Equal(t, "jdoe", user)
		assert.Equal(t, filepath.Join(dir, UserFileName), UserFile(wb))
	})

	t.Run("blank file falls back", func(t *testing.T) {
		require.NoError(t, os.WriteFile(UserFile(wb), []byte("\n"), 0o600))
		user, err := LoadUser(wb)
		require.NoError(t, err)
		assert.Equal(t, DefaultUser, user)
	})
}
