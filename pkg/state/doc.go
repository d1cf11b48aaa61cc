// Package state implements the in-memory resource stores backing stateful
// mock responses: OAuth tokens, OSS buckets and objects, Data Management
// hubs and projects, Model Derivative translation jobs, ACC issues, and
// webhook subscriptions.
//
// Each store guards an independent key space with its own lock; operations
// on disjoint stores never contend. Secondary indexes (token -> client,
// hub -> projects, bucket -> objects) are updated in the same critical
// section as the primary table, so readers never observe a partially
// applied mutation. List operations return snapshots.
//
// Stores are constructed once per process via NewManager and injected into
// request handlers; there are no package-level registries.
package state
