package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookLifecycle(t *testing.T) {
	store := NewWebhookStore()

	hook := store.Create("data", "https://example.com/cb", WebhookScope{Folder: "urn:folder"})
	assert.NotEmpty(t, hook.HookID)
	assert.Equal(t, "data", hook.Tenant)
	assert.Equal(t, "active", hook.Status)
	assert.Equal(t, "urn:folder", hook.Scope.Folder)

	got, ok := store.Get(hook.HookID)
	require.True(t, ok)
	assert.Equal(t, hook, got)

	assert.True(t, store.Delete(hook.HookID))
	assert.False(t, store.Delete(hook.HookID))
	_, ok = store.Get(hook.HookID)
	assert.False(t, ok)
}

func TestWebhookList(t *testing.T) {
	store := NewWebhookStore()
	store.Create("data", "https://example.com/a", WebhookScope{})
	store.Create("derivative", "https://example.com/b", WebhookScope{})

	hooks := store.List()
	assert.Len(t, hooks, 2)

	tenants := map[string]bool{}
	for _, hook := range hooks {
		tenants[hook.Tenant] = true
	}
	assert.True(t, tenants["data"])
	assert.True(t, tenants["derivative"])
}
