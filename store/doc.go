// Package store provides the DynamoDB data access layer for the retail
// admin system.
//
// Three logical collections are managed: customers, products and orders.
// Every row is addressed by a composite key of (partition_key, row_key).
// The partition key gives coarse grouping (a customer's province, a
// product's category, an order's year-month) and the row key is a random
// UUID assigned at insert time, never mutated afterwards. A later change
// to the grouping field does not re-partition the row.
//
// # Operations
//
// Per collection the store offers:
//
//   - List: full unordered scan, no paging exposed to callers
//   - Get: point lookup; a miss returns [ErrNotFound], not a raw SDK error
//   - Insert: assigns fresh keys and writes the row
//   - Update: unconditional replace of the whole row (last-writer-wins)
//   - Delete: removal by key
//
// Updates deliberately carry no optimistic-concurrency condition; callers
// that need stronger guarantees must serialize their own writes.
//
// # Errors
//
//   - [ErrNotFound] - row doesn't exist
//
// All other errors are storage/transport failures surfaced as-is.
package store
