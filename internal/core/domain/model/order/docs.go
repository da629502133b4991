// Package order provides the Order aggregate used to exercise the unit of
// work end to end.
//
// The package includes:
//   - Order: the aggregate root with identity, volume, courier and lifecycle
//   - Status: a state machine that enforces valid order status transitions
//   - JSON snapshots: Order implements json.Marshaler and json.Unmarshaler so
//     storage adapters can persist it and restore it in place
//
// Key business rules:
//   - Orders must have a valid identifier and a positive volume
//   - Order status follows Created -> Assigned -> Completed
//   - Volume can only change while the order is Created
//   - Orders can be reassigned while Assigned and completed only when Assigned
//   - A Reference carries only an identifier until a rollback hydrates it
package order
