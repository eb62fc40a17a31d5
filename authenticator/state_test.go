package authenticator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fysikteknologsektionen/ftek-login/cookies"
)

// memoryStore is a cookies.Store backed by a map
type memoryStore map[string]string

func (m memoryStore) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m memoryStore) Set(name, value string) {
	m[name] = value
}

func (m memoryStore) Delete(name string) {
	delete(m, name)
}

func TestNewRandomKey(t *testing.T) {
	a, err := NewRandomKey()
	require.NoError(t, err)
	b, err := NewRandomKey()
	require.NoError(t, err)

	assert.True(t, IsRandomKey(a))
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestIsRandomKey(t *testing.T) {
	assert.True(t, IsRandomKey("0123456789abcdef0123456789abcdef"))
	assert.False(t, IsRandomKey("0123456789ABCDEF0123456789ABCDEF"))
	assert.False(t, IsRandomKey("0123456789abcdef"))
	assert.False(t, IsRandomKey("0123456789abcdef0123456789abcdeg"))
	assert.False(t, IsRandomKey(""))
}

func TestStateManager_GetOrCreateIsStable(t *testing.T) {
	store := memoryStore{}
	m := NewStateManager(store)

	first, err := m.GetOrCreate()
	require.NoError(t, err)
	assert.True(t, IsRandomKey(first))
	assert.Equal(t, first, store[cookies.StateCookie])

	second, err := m.GetOrCreate()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStateManager_ReplacesMalformedState(t *testing.T) {
	store := memoryStore{cookies.StateCookie: "not-a-state"}
	m := NewStateManager(store)

	state, err := m.GetOrCreate()
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-state", state)
	assert.True(t, IsRandomKey(state))
}

func TestStateManager_Validate(t *testing.T) {
	store := memoryStore{}
	m := NewStateManager(store)

	state, err := m.GetOrCreate()
	require.NoError(t, err)

	ok, err := m.Validate(state)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Validate("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Validate("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateManager_ValidateWithoutCookie(t *testing.T) {
	store := memoryStore{}
	m := NewStateManager(store)

	ok, err := m.Validate("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, IsRandomKey(store[cookies.StateCookie]))
}
