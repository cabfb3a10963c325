// Package sources fetches fresh batches for retries.
//
// A failed sync stores no payload, so retrying it means asking the storefront
// for the entity kind again. A BatchSource returns the current batch of one
// kind for one store as the raw JSON array the writer accepts.
//
// Implementations:
//   - FileSource reads <dir>/<store id>/<kind>.json
//   - APISource fetches <endpoint>/stores/<store id>/<kind> and accepts either
//     a bare array or an object wrapping the array under the kind name
package sources
