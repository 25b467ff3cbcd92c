// Package order provides domain entities and business logic for the valet
// order lifecycle. It implements the Order aggregate root with the status
// state machine and driver-assignment arbitration rules, plus the satellite
// entities tied to an order.
//
// The package includes:
//   - Order: The aggregate root managing identity, route, fare and lifecycle
//   - Status: A state machine enforcing the fixed transition adjacency table
//   - Route, Fare, Stop, Contact: validated value objects composing an order
//   - EmergencyAlert: an alert raised during an active order, resolved by admins
//   - HandoverPhoto: a reference to a vehicle handover photo, one per side
//
// Key business rules:
//   - At most one driver can ever be recorded on an order; a second claim
//     fails with ErrAlreadyTaken and re-claims by the holder are idempotent
//   - Status transitions follow the adjacency table in status.go; skipping
//     steps fails with ErrIllegalTransition
//   - Orders are never deleted; completed and cancelled are terminal
//   - The denormalized license plate mirrors the assigned vehicle's plate
//     whenever a vehicle is set
package order
