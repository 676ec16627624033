package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshalAcceptsNumbers(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`["C1", 42, 7.5]`), &ids))
	assert.Equal(t, []ID{"C1", "42", "7.5"}, ids)

	data, err := json.Marshal(ID("42"))
	require.NoError(t, err)
	assert.JSONEq(t, `"42"`, string(data))

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`null`), &id))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"Task", "task", " T "} {
		kind, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, KindTask, kind)
	}

	kind, err := ParseKind("col")
	require.NoError(t, err)
	assert.Equal(t, KindColumn, kind)

	_, err = ParseKind("card")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDescriptor(t *testing.T) {
	d, err := ParseDescriptor("task:T1")
	require.NoError(t, err)
	assert.Equal(t, TaskRef("T1"), d)
	assert.True(t, d.IsTask())
	assert.Equal(t, "task:T1", d.String())

	d, err = ParseDescriptor("Column:C2")
	require.NoError(t, err)
	assert.Equal(t, ColumnRef("C2"), d)
	assert.True(t, d.IsColumn())

	_, err = ParseDescriptor("T1")
	assert.Error(t, err)

	_, err = ParseDescriptor("task:")
	assert.ErrorIs(t, err, ErrEmptyDescriptorID)

	assert.ErrorIs(t, Descriptor{Kind: "Card", ID: "x"}.Validate(), ErrUnknownKind)
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator()
	assert.Equal(t, ID("C1"), g.NewID(KindColumn))
	assert.Equal(t, ID("T1"), g.NewID(KindTask))
	assert.Equal(t, ID("T2"), g.NewID(KindTask))
	assert.Equal(t, ID("C2"), g.NewID(KindColumn))
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.NewID(KindTask), g.NewID(KindTask)
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a.String())
	assert.NoError(t, err)
}
