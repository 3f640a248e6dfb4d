// Package vault provides the persistence layer of the vault store.
//
// The store is append-only: Repository offers Insert and ListByOwner and
// nothing that edits or removes a saved secret. Listing is always filtered
// by owner and returns rows in insertion (id) order.
package vault
