package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("defaults.sheet_id", "sheet-1"))

	val, ok := store.Get("defaults.sheet_id")
	assert.True(t, ok)
	assert.Equal(t, "sheet-1", val)

	_, ok = store.Get("defaults.blog_id")
	assert.False(t, ok)
}

func TestConfigStore_SetMany(t *testing.T) {
	store := NewConfigStore()

	err := store.SetMany(map[string]any{
		"account.user_id": "u1",
		"account.email":   "u1@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", store.GetString("account.user_id"))
	assert.Equal(t, "u1@example.com", store.GetString("account.email"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.SetMany(map[string]any{
		"str":     "value",
		"int":     42,
		"int64":   int64(7),
		"float":   1.5,
		"bool":    true,
		"wrong":   []string{"x"},
		"numeric": "12",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"string wrong type", store.GetString("int"), ""},
		{"string missing", store.GetString("missing"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 7},
		{"int from float", store.GetInt("float"), 1},
		{"int from string", store.GetInt("numeric"), 0},
		{"float", store.GetFloat("float"), 1.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float from int64", store.GetFloat("int64"), 7.0},
		{"float wrong type", store.GetFloat("wrong"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('A'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt("key-"+string(rune('A'+i))))
	}
}
