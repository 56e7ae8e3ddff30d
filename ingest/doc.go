// Package ingest provides bulk loading of vector records into a vector
// store backend.
//
// The Loader type fans record batches out to a worker pool so large
// imports overlap their storage writes. Records without an explicit ID get
// a deterministic content-addressed ID when they carry content, or a
// generated UUID when the loader is configured for it.
package ingest
