package ingest

import "errors"

var (
	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrMissingID is returned when a record has no ID, no content to
	// derive one from, and ID generation is not enabled.
	ErrMissingID = errors.New("record has no id and no content to derive one from")
)
