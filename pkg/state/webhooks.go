package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// WebhookScope optionally narrows a subscription to a folder or project.
type WebhookScope struct {
	Folder  string `json:"folder,omitempty"`
	Project string `json:"project,omitempty"`
}

// WebhookSubscription is a webhook registration record.
type WebhookSubscription struct {
	HookID      string       `json:"hookId"`
	Tenant      string       `json:"tenant"`
	CallbackURL string       `json:"callbackUrl"`
	Scope       WebhookScope `json:"scope"`
	Status      string       `json:"status"`
	CreatedAt   int64        `json:"createdAt"`
}

// WebhookStore keys subscriptions by generated hook id.
type WebhookStore struct {
	mu            sync.RWMutex
	subscriptions map[string]WebhookSubscription
}

// NewWebhookStore creates an empty subscription store.
func NewWebhookStore() *WebhookStore {
	return &WebhookStore{subscriptions: make(map[string]WebhookSubscription)}
}

// Create registers a subscription with a generated hook id and status
// "active".
func (s *WebhookStore) Create(tenant, callbackURL string, scope WebhookScope) WebhookSubscription {
	sub := WebhookSubscription{
		HookID:      uuid.NewString(),
		Tenant:      tenant,
		CallbackURL: callbackURL,
		Scope:       scope,
		Status:      "active",
		CreatedAt:   time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.subscriptions[sub.HookID] = sub
	s.mu.Unlock()
	return sub
}

// Get returns a subscription by hook id.
func (s *WebhookStore) Get(hookID string) (WebhookSubscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[hookID]
	return sub, ok
}

// List returns a snapshot of all subscriptions.
func (s *WebhookStore) List() []WebhookSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WebhookSubscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		out = append(out, sub)
	}
	return out
}

// Delete removes a subscription, reporting whether it existed.
func (s *WebhookStore) Delete(hookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.subscriptions[hookID]
	delete(s.subscriptions, hookID)
	return ok
}
