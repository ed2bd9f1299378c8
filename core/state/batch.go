package state

import "nomadzpay/storage"

// Batch buffers writes on top of a storage database so an operation's state
// changes become visible only when the whole operation succeeds. Reads see
// the buffered writes first, then fall through to the backing store.
type Batch struct {
	db     storage.Database
	writes map[string][]byte
	order  []string
}

// NewBatch creates an empty write batch over the provided database.
func NewBatch(db storage.Database) *Batch {
	return &Batch{
		db:     db,
		writes: make(map[string][]byte),
	}
}

// Get returns the buffered value for the key when present, otherwise the
// value from the backing store.
func (b *Batch) Get(key []byte) ([]byte, error) {
	if value, ok := b.writes[string(key)]; ok {
		return append([]byte(nil), value...), nil
	}
	return b.db.Get(key)
}

// Put buffers a write. Nothing reaches the backing store until Commit.
func (b *Batch) Put(key, value []byte) error {
	k := string(key)
	if _, ok := b.writes[k]; !ok {
		b.order = append(b.order, k)
	}
	b.writes[k] = append([]byte(nil), value...)
	return nil
}

// Commit flushes the buffered writes to the backing store in insertion order.
func (b *Batch) Commit() error {
	for _, k := range b.order {
		if err := b.db.Put([]byte(k), b.writes[k]); err != nil {
			return err
		}
	}
	b.writes = make(map[string][]byte)
	b.order = nil
	return nil
}

// Discard drops all buffered writes.
func (b *Batch) Discard() {
	b.writes = make(map[string][]byte)
	b.order = nil
}
