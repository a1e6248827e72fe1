package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// schemaVersion is the record-table layout this build writes.
//
// History:
//
//	1: single "photo" field holding one inline image (or empty)
//	2: "photos" list of {url, isCover, gpsLocation} attachments
//	3: "alcoholType" and "tags" present on every row
const schemaVersion = 3

var keySchemaVersion = []byte("schema_version")

// upgradeSchema applies pending record-table upgrades one version at a time.
// Each step scans all rows once, rewrites only rows that need it and is safe
// to run against already-migrated rows.
func (s *Storage) upgradeSchema() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return fmt.Errorf("meta bucket not found")
		}

		version := storedVersion(meta)
		if version == 0 {
			// No version marker yet. A fresh database starts at the
			// current version; a database that already holds records
			// predates the marker and is version 1.
			if bucketEmpty(tx.Bucket(bucketRecords)) {
				return saveVersion(meta, schemaVersion)
			}
			version = 1
		}

		for version < schemaVersion {
			step, ok := upgrades[version]
			if !ok {
				return fmt.Errorf("no upgrade from schema version %d", version)
			}
			if err := step(tx.Bucket(bucketRecords)); err != nil {
				return fmt.Errorf("upgrade %d->%d failed: %w", version, version+1, err)
			}
			version++
			if err := saveVersion(meta, version); err != nil {
				return err
			}
		}
		return nil
	})
}

// upgrades maps a schema version to the step that lifts it one version up.
var upgrades = map[uint64]func(*bbolt.Bucket) error{
	1: upgradePhotoList,
	2: upgradeCategoryDefaults,
}

// upgradePhotoList converts the legacy single-photo field into the photo
// list shape: an empty list when there was no photo, a single cover photo
// otherwise. Rows that already carry a photo list are skipped.
func upgradePhotoList(bucket *bbolt.Bucket) error {
	return rewriteRows(bucket, func(row map[string]any) bool {
		if _, ok := row["photos"]; ok {
			return false
		}
		photos := []any{}
		if url, ok := row["photo"].(string); ok && url != "" {
			photos = append(photos, map[string]any{"url": url, "isCover": true})
		}
		delete(row, "photo")
		row["photos"] = photos
		return true
	})
}

// upgradeCategoryDefaults backfills the beverage category and the tag list
// with empty defaults on rows that predate the fields.
func upgradeCategoryDefaults(bucket *bbolt.Bucket) error {
	return rewriteRows(bucket, func(row map[string]any) bool {
		changed := false
		if _, ok := row["alcoholType"]; !ok {
			row["alcoholType"] = ""
			changed = true
		}
		if _, ok := row["tags"]; !ok {
			row["tags"] = []any{}
			changed = true
		}
		return changed
	})
}

// rewriteRows applies fn to every row and writes back the rows fn reports
// as changed. fn receives the decoded JSON object and may modify it in place.
func rewriteRows(bucket *bbolt.Bucket, fn func(map[string]any) bool) error {
	if bucket == nil {
		return nil
	}

	type pending struct {
		key  []byte
		data []byte
	}
	var rewrites []pending

	err := bucket.ForEach(func(k, v []byte) error {
		row := map[string]any{}
		if err := json.Unmarshal(v, &row); err != nil {
			return fmt.Errorf("failed to unmarshal row %s: %w", k, err)
		}
		if !fn(row) {
			return nil
		}
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %s: %w", k, err)
		}
		key := make([]byte, len(k))
		copy(key, k)
		rewrites = append(rewrites, pending{key: key, data: data})
		return nil
	})
	if err != nil {
		return err
	}

	// Writes are deferred so the cursor above never sees its own updates.
	for _, p := range rewrites {
		if err := bucket.Put(p.key, p.data); err != nil {
			return fmt.Errorf("failed to rewrite row %s: %w", p.key, err)
		}
	}
	return nil
}

func storedVersion(meta *bbolt.Bucket) uint64 {
	data := meta.Get(keySchemaVersion)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func saveVersion(meta *bbolt.Bucket, version uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, version)
	if err := meta.Put(keySchemaVersion, data); err != nil {
		return fmt.Errorf("failed to save schema version: %w", err)
	}
	return nil
}

func bucketEmpty(bucket *bbolt.Bucket) bool {
	if bucket == nil {
		return true
	}
	k, _ := bucket.Cursor().First()
	return k == nil
}
