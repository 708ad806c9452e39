package storage

// BlobStore persists opaque binary objects and returns a resolvable URL for
// each. The ledger stores the returned URL as the proof reference on a dose
// log; nothing else about the URL format is assumed.
type BlobStore interface {
	Upload(objectPath string, data []byte) (string, error)
}
