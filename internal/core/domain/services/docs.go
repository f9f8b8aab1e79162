// Package services provides domain services that work across the order aggregate and
// the catalog records it is built from.
//
// The package includes:
//   - SnapshotProduct, SnapshotShop, SnapshotAddress: pure converters that freeze a
//     live catalog record into the value stored inside an order
//   - OrderAssembler: distributes product lines into per-shop buckets and builds the Order
//
// Nothing here performs I/O. Catalog records are resolved by the application layer and
// handed over already loaded.
package services
