// Package service implements the domain services of the retail admin
// system: customers, products, orders and the audit trail.
//
// Each service validates input, orchestrates the entity store, the photo
// store and the audit queue, and enforces uniqueness constraints by full
// collection scans. The scans make uniqueness a sequential guarantee
// only: two concurrent creates with the same email or product name can
// both pass the check. Audit logging failures are logged and swallowed,
// never surfaced to the caller.
//
// Errors returned to callers fall into three groups:
//
//   - [*ValidationError] - a business rule was violated; carries the reason
//   - [ErrNotFound] - the addressed entity does not exist
//   - anything else - an unexpected storage failure, wrapped
package service
