package storage

import "fmt"

// BackendType identifies a storage capability domain.
type BackendType int

const (
	// VectorStoreType identifies vector similarity storage.
	VectorStoreType BackendType = iota + 1
	// KnowledgeGraphType identifies entity/relation graph storage.
	KnowledgeGraphType
	// CheckpointStoreType identifies opaque state snapshot storage.
	CheckpointStoreType
)

func (t BackendType) String() string {
	switch t {
	case VectorStoreType:
		return "vector_store"
	case KnowledgeGraphType:
		return "knowledge_graph"
	case CheckpointStoreType:
		return "checkpoint_store"
	default:
		return fmt.Sprintf("backend_type(%d)", int(t))
	}
}

// ParseBackendType maps a type name to its BackendType.
func ParseBackendType(s string) (BackendType, error) {
	switch s {
	case "vector_store":
		return VectorStoreType, nil
	case "knowledge_graph":
		return KnowledgeGraphType, nil
	case "checkpoint_store":
		return CheckpointStoreType, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackendType, s)
	}
}

// BackendTypes returns all defined backend types.
func BackendTypes() []BackendType {
	return []BackendType{VectorStoreType, KnowledgeGraphType, CheckpointStoreType}
}

// ProviderRegistration associates a (BackendType, provider name) pair with
// the constructor that builds instances for it. Tables of registrations are
// passed to Factory.RegisterAll in a single initialization pass so the set
// of available providers is inspectable and reproducible.
type ProviderRegistration struct {
	Type BackendType
	Name string
	New  Constructor
}
