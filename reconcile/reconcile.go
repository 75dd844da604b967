// Package reconcile keeps local game directories honest before a fetch is attempted.
//
// A game directory is complete only when it holds an extracted music payload
// (plus a cover when the archive has one). Empty directories, directories
// holding nothing but a cover image, and directories still holding the
// transfer archive are false signals of completion and get removed so the
// next fetch starts clean.
package reconcile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/log"
)

// coverPrefix marks the cover image file written next to the extracted payload.
const coverPrefix = "cover"

// ArchiveName is the transient filename the music archive is downloaded under.
const ArchiveName = "music.zip"

// HasPayload reports whether the directory contains an extracted music
// payload: at least one file, possibly nested, that is not a cover image,
// a partial download artifact, or the transfer archive itself.
func HasPayload(dir string) bool {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if HasPayload(filepath.Join(dir, entry.Name())) {
				return true
			}
			continue
		}
		if isPayloadFile(entry.Name()) {
			return true
		}
	}
	return false
}

// Stalled reports whether the directory still holds the transfer archive.
func Stalled(dir string) bool {
	exists, err := filesystem.API().Exists(filepath.Join(dir, ArchiveName))
	return err == nil && exists
}

// Game removes the game directory when it is empty, holds only a cover
// image, holds nothing but empty subfolders, or still carries the transfer
// archive. Complete directories are left untouched; the fetcher's skip rule
// is the second safety net.
func Game(dir string) error {
	fs := filesystem.API()

	entries, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if len(entries) == 0 {
		log.Debugf("removing empty game directory %s", dir)
		return fs.Remove(dir)
	}

	// A surviving archive is an in-flight marker: success deletes it after
	// extraction, so whatever sits next to it cannot be trusted. With
	// keep_archive set the archive is a legitimate resident and this signal
	// is unavailable.
	stalled := Stalled(dir) && !viper.GetBool(key.DownloadsKeepArchive)

	if !stalled && HasPayload(dir) {
		return nil
	}

	// Cover-only, stalled-transfer, empty-subfolder, or leftover partial
	// state: wipe so the fetch starts clean instead of merging with stale
	// remains.
	log.Debugf("removing incomplete game directory %s", dir)
	return fs.RemoveAll(dir)
}

// Console reconciles every game directory under a console directory.
func Console(dir string) error {
	fs := filesystem.API()

	entries, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := Game(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func isPayloadFile(name string) bool {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, coverPrefix) {
		return false
	}
	if strings.HasSuffix(name, ".part") {
		return false
	}
	if name == ArchiveName {
		return false
	}
	return true
}
