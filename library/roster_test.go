package library

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	r := newRoster()
	require.True(t, r.add("Reader-1", RoleReader))
	require.True(t, r.add("Writer-1", RoleWriter))
	require.True(t, r.add("Reader-2", RoleReader))
	require.False(t, r.add("Reader-1", RoleWriter))

	require.Equal(t, []string{"Reader-1", "Writer-1", "Reader-2"}, r.ids())
	require.Equal(t, 2, r.count(RoleReader))
	require.Equal(t, 1, r.count(RoleWriter))

	role, ok := r.remove("Writer-1")
	require.True(t, ok)
	require.Equal(t, RoleWriter, role)
	require.Equal(t, []string{"Reader-1", "Reader-2"}, r.ids())
	require.Equal(t, 0, r.count(RoleWriter))

	_, ok = r.remove("Writer-1")
	require.False(t, ok)
	require.False(t, r.contains("Writer-1"))

	// повторное добавление идёт в конец
	require.True(t, r.add("Writer-1", RoleWriter))
	require.Equal(t, []string{"Reader-1", "Reader-2", "Writer-1"}, r.ids())
	require.Equal(t, 3, r.len())
}

func TestRosterIDsIsACopy(t *testing.T) {
	r := newRoster()
	r.add("Reader-1", RoleReader)
	ids := r.ids()
	ids[0] = "changed"
	require.Equal(t, []string{"Reader-1"}, r.ids())
}
