package store

import (
	"encoding/binary"

	"go.etcd.io/bbolt"
)

const schemaVersion = 1

var schemaKey = []byte("schema_version")

func readVersion(tx *bbolt.Tx) uint64 {
	v := tx.Bucket([]byte(metaBucket)).Get(schemaKey)
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

func writeVersion(tx *bbolt.Tx, version uint64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, version)

	return tx.Bucket([]byte(metaBucket)).Put(schemaKey, v)
}

// migrate stamps a new database with the current schema version and refuses
// databases written by a newer release.
func (c *Client) migrate(tx *bbolt.Tx) error {
	switch version := readVersion(tx); {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return errUnknownSchema.Fmt(version)
	}

	return writeVersion(tx, schemaVersion)
}
