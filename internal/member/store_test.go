package member_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/memberadmin/internal/member"
	"github.com/jask/memberadmin/internal/testdata"
)

func TestStoreReplaceAllCopiesAndDedupes(t *testing.T) {
	in := []member.Record{
		{ID: "1", Name: "first"},
		{ID: "2", Name: "second"},
		{ID: "1", Name: "dup"},
	}
	s := member.NewStore(in...)
	require.Equal(t, 2, s.Len())
	r, ok := s.Get("1")
	require.True(t, ok)
	require.Equal(t, "first", r.Name)

	in[1].Name = "mutated"
	r, _ = s.Get("2")
	require.Equal(t, "second", r.Name, "store must not alias caller slice")

	all := s.All()
	all[0].Name = "mutated"
	r, _ = s.Get("1")
	require.Equal(t, "first", r.Name, "All must return a copy")

	s.ReplaceAll(nil)
	require.Zero(t, s.Len())
	require.False(t, s.Has("1"))
}

func TestStoreRemoveWhere(t *testing.T) {
	s := member.NewStore(testdata.Numbered(5)...)
	removed := s.RemoveWhere(func(id member.ID) bool { return id == "2" || id == "4" || id == "9" })
	require.Equal(t, []member.ID{"2", "4"}, removed)
	require.Equal(t, []member.ID{"1", "3", "5"}, testdata.IDs(s.All()))

	r, ok := s.Get("5")
	require.True(t, ok, "index must follow removal")
	require.Equal(t, "U5", r.Name)

	require.Nil(t, s.RemoveWhere(func(member.ID) bool { return false }))
}

func TestStoreUpdateOne(t *testing.T) {
	s := member.NewStore(testdata.Numbered(3)...)
	ok := s.UpdateOne("2", member.Draft{Name: "Updated", Email: "a@b.com", Role: "admin"})
	require.True(t, ok)
	r, _ := s.Get("2")
	require.Equal(t, member.Record{ID: "2", Name: "Updated", Email: "a@b.com", Role: "admin"}, r)

	require.False(t, s.UpdateOne("42", member.Draft{Name: "ghost"}))
	require.Equal(t, 3, s.Len())
}

func TestParseField(t *testing.T) {
	f, err := member.ParseField(" Email ")
	require.NoError(t, err)
	require.Equal(t, member.FieldEmail, f)

	_, err = member.ParseField("id")
	require.True(t, errors.Is(err, member.ErrUnknownField))
}
