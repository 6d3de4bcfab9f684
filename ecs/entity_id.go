package ecs

// EntityID packs an index and a version into a single integer. The low
// IndexBits bits hold the index (a slot in the registry's live-entity
// table); the remaining high bits hold the version, bumped each time the
// slot is recycled so stale handles can be detected.
type EntityID uint32

const (
	// IndexBits is the width of the index field of an EntityID.
	IndexBits = 22
	// VersionBits is the width of the version field of an EntityID.
	VersionBits = 10

	// IndexMask selects the index field.
	IndexMask EntityID = (1 << IndexBits) - 1
	// VersionMask selects the version field once shifted down.
	VersionMask EntityID = (1 << VersionBits) - 1

	// MaxIndex is the largest index an EntityID can hold.
	MaxIndex = uint32(IndexMask)
	// MaxVersion is the largest version an EntityID can hold before wrapping.
	MaxVersion = uint32(VersionMask)

	// InvalidEntityID never denotes a live entity.
	InvalidEntityID EntityID = 0
)

func init() {
	const total = IndexBits + VersionBits
	if total != 32 {
		panic("ecs: IndexBits + VersionBits must equal 32")
	}
}

// Index extracts the index field of an EntityID.
func (id EntityID) Index() uint32 {
	return uint32(id & IndexMask)
}

// Version extracts the version field of an EntityID.
func (id EntityID) Version() uint32 {
	return uint32((id >> IndexBits) & VersionMask)
}

// JoinEntityID packs an index and version into an EntityID. Both are
// masked to their respective field widths: index is expected to be
// <= MaxIndex (higher bits are dropped) and version is taken modulo
// 2^VersionBits.
func JoinEntityID(index, version uint32) EntityID {
	return EntityID(index&uint32(IndexMask)) | (EntityID(version&uint32(VersionMask)) << IndexBits)
}

// Upgrade returns id with its version incremented modulo 2^VersionBits,
// index unchanged. Used when recycling a destroyed entity's index.
func Upgrade(id EntityID) EntityID {
	next := (id.Version() + 1) & uint32(VersionMask)
	return JoinEntityID(id.Index(), next)
}

// entityIndexer is the Indexer used to address the registry's live-entity
// SparseSet: entities are keyed by their index field alone, so liveness
// lookups are stable across version bumps (spec invariant I5).
func entityIndexer(id EntityID) uint32 {
	return id.Index()
}
