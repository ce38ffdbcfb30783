package wrike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		tasks, err := Unwrap[[]Task]([]byte(`{"kind":"tasks","data":[{"id":"T1","title":"X"}]}`))
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "T1", tasks[0].ID)
	})

	t.Run("already unwrapped array", func(t *testing.T) {
		tasks, err := Unwrap[[]Task]([]byte(`[{"id":"T2","title":"Y"}]`))
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "T2", tasks[0].ID)
	})

	t.Run("object without data", func(t *testing.T) {
		task, err := Unwrap[Task]([]byte(`{"id":"T3","title":"Z"}`))
		require.NoError(t, err)
		assert.Equal(t, "T3", task.ID)
	})

	t.Run("empty body", func(t *testing.T) {
		tasks, err := Unwrap[[]Task](nil)
		require.NoError(t, err)
		assert.Nil(t, tasks)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Unwrap[[]Task]([]byte(`{"data":`))
		assert.Error(t, err)
	})
}

func TestTask_KeepsUnknownFields(t *testing.T) {
	tasks, err := Unwrap[[]Task]([]byte(`{"data":[{"id":"T1","title":"X","effortAllocation":{"mode":"None"}}]}`))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Contains(t, tasks[0].Extra, "effortAllocation")

	out, err := tasks[0].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"T1","title":"X","effortAllocation":{"mode":"None"}}`, string(out))
}

func TestFolder_IsArchived(t *testing.T) {
	assert.True(t, Folder{Archived: true}.IsArchived())
	assert.True(t, Folder{Scope: "RbFolder"}.IsArchived())
	assert.False(t, Folder{Scope: "WsFolder"}.IsArchived())
}

func TestParseCustomFieldValues(t *testing.T) {
	values, err := ParseCustomFieldValues(`[{"id":"CF1","value":"a"},{"id":"CF2","value":3},{"id":"CF3","value":null}]`)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, FieldString, values[0].Value.Kind())
	assert.Equal(t, float64(3), values[1].Value.Any())
	assert.Equal(t, FieldNull, values[2].Value.Kind())

	_, err = ParseCustomFieldValues(`[{"value":"a"}]`)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseCustomFieldValues(`not json`)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseCustomFieldValues(42)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
