// Package order provides the multi-vendor order aggregate.
//
// The package includes:
//   - Order: the aggregate root holding the order number, buyer, deliverer, total,
//     currency, shop slices and delivery locations
//   - ShopOrder: one shop's slice with its own fulfillment status and pickup time
//   - ProductOrder and LocationOrder: immutable snapshots of catalog records
//   - FulfillmentStatus: the per-shop state machine
//   - Number: the short, shareable order identifier
//
// Key business rules:
//   - an order spans one or more shops, every product line belongs to a listed shop
//   - the total is the sum of the prices submitted with the lines and is never recomputed
//   - each shop moves Waiting -> Preparing -> Pending -> Accepted -> Completed on its own,
//     forward skips allowed, Rejected from any non-terminal status
//   - a pickup time can only be set once the shop has accepted
package order
