// Package retry repeats an operation with exponential backoff.
//
// [Do] retries until the operation succeeds, returns a [Permanent] error,
// the attempt budget runs out, or the context ends. The pricing client uses
// it for price sheet downloads.
package retry
