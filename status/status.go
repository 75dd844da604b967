// Package status provides the implementation for tracking and persisting per-game download outcomes.
package status

import (
	"github.com/metafates/gache"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/where"
)

// cacher provides an abstracted, disk-backed registry for download outcome records.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.Status(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of download records from the persistent store.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Save persists the outcome of a specific game to the status ledger.
// The ledger is flushed after every game so an interrupted run loses at most
// the in-flight entry.
func Save(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[record.key()] = record
	return cacher.Set(saved)
}

// Failed returns every recorded game whose last attempt did not complete.
func Failed() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	var failed []*Record
	for _, record := range saved {
		if record.Outcome != Done {
			failed = append(failed, record)
		}
	}
	return failed, nil
}

// Remove permanently deletes a specific record from the ledger.
func Remove(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.key())
	return cacher.Set(saved)
}
