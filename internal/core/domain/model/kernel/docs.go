// Package kernel provides the value objects shared across the marketplace domain:
//
//   - UUID: identifiers of catalog records and users
//   - Money and Currency: exact decimal prices and the code they are expressed in
//   - Coordinates: latitude/longitude of a geocoded address
//
// All of them are immutable and reject their zero value through Validate, so a
// value that reaches an aggregate has always passed its constructor.
package kernel
