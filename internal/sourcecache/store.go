package sourcecache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

const tablePrefixSources = "dependency_sources_"

// Store persists fetched dependency sources, zstd-compressed. Keys include the pinned dependency
// version so switching versions does not serve stale files.
type Store struct {
	db      *badger.DB
	version string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens the store in dir. An empty dir keeps everything in memory.
func Open(dir, version string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open source cache %s: %w", dir, err)
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Join(err, encoder.Close(), db.Close())
	}
	return &Store{db: db, version: version, encoder: encoder, decoder: decoder}, nil
}

func (s *Store) Get(path string) (string, bool, error) {
	tx := s.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get(s.key(path))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get source %s: %w", path, err)
	}
	var data []byte
	err = item.Value(func(val []byte) error {
		var err error
		data, err = s.decoder.DecodeAll(val, nil)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to decode source %s: %w", path, err)
	}
	return string(data), true, nil
}

func (s *Store) Put(path, content string) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set(s.key(path), s.encoder.EncodeAll([]byte(content), nil)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Len counts the sources stored for the current version.
func (s *Store) Len() (int, error) {
	tx := s.db.NewTransaction(false)
	defer tx.Discard()

	prefix := s.key("")
	it := tx.NewIterator(badger.IteratorOptions{Prefix: prefix})
	defer it.Close()

	n := 0
	for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n, nil
}

func (s *Store) Close() error {
	s.decoder.Close()
	return errors.Join(s.encoder.Close(), s.db.Close())
}

func (s *Store) key(path string) []byte {
	return append([]byte(tablePrefixSources+s.version+"/"), path...)
}
