// Package fetch downloads archive resources with resumable, atomic filesystem semantics.
//
// Existing targets are skipped without a network call, transfers stream to a
// temporary path and are moved into place only once complete, and archive
// extraction is all-or-nothing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/log"
	"github.com/vgmirror-cli/vgmirror/network"
	"github.com/vgmirror-cli/vgmirror/reconcile"
)

// partSuffix marks in-flight transfers; a crash never leaves a half-written
// file that could be mistaken for a completed download.
const partSuffix = ".part"

// ArchiveName is the transient filename the music archive is downloaded under.
const ArchiveName = reconcile.ArchiveName

// Status is the outcome of a single fetch operation.
type Status int

const (
	Downloaded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher retrieves files and archives over HTTP into the local mirror tree.
type Fetcher struct {
	client      *http.Client
	keepArchive bool
}

// New constructs a Fetcher from the shared network client and global configuration.
func New() *Fetcher {
	return &Fetcher{
		client:      network.Client,
		keepArchive: viper.GetBool(key.DownloadsKeepArchive),
	}
}

// File downloads url to destPath. An existing destination short-circuits to
// Skipped without touching the network.
func (f *Fetcher) File(ctx context.Context, url, destPath string) (Status, error) {
	fs := filesystem.API()

	exists, err := fs.Exists(destPath)
	if err != nil {
		return Failed, err
	}
	if exists {
		log.Debugf("skipping existing file %s", destPath)
		return Skipped, nil
	}

	if err := fs.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return Failed, err
	}

	if err := f.download(ctx, url, destPath); err != nil {
		return Failed, err
	}
	return Downloaded, nil
}

// Archive downloads the compressed archive at url and extracts it into
// destDir. A directory that already holds an extracted payload is Skipped —
// unless the archive file itself is still present, which means the previous
// run died between download and cleanup and the transfer starts over.
// Extraction is all-or-nothing: a failure removes everything the archive
// wrote, and the archive file itself is deleted after success unless the
// keep-archive option is set (in which case a stalled transfer is
// indistinguishable from a kept one and the reconciler is the only guard).
func (f *Fetcher) Archive(ctx context.Context, url, destDir string) (Status, error) {
	fs := filesystem.API()

	archivePath := filepath.Join(destDir, ArchiveName)

	if !f.keepArchive && reconcile.Stalled(destDir) {
		log.Debugf("restarting stalled transfer in %s", destDir)
		_ = fs.Remove(archivePath)
	} else if reconcile.HasPayload(destDir) {
		log.Debugf("skipping %s: payload already extracted", destDir)
		return Skipped, nil
	}

	if err := fs.MkdirAll(destDir, os.ModePerm); err != nil {
		return Failed, err
	}

	if err := f.download(ctx, url, archivePath); err != nil {
		return Failed, err
	}

	if err := extract(archivePath, destDir); err != nil {
		// The archive itself is part of the failed state.
		_ = fs.Remove(archivePath)
		return Failed, fmt.Errorf("extract %s: %w", archivePath, err)
	}

	if !f.keepArchive {
		if err := fs.Remove(archivePath); err != nil {
			log.Warnf("remove archive %s: %v", archivePath, err)
		}
	}

	return Downloaded, nil
}

// download streams url to destPath through a temporary sibling, moving the
// result into place only after the transfer completes fully.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	fs := filesystem.API()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	partPath := destPath + partSuffix
	file, err := fs.Create(partPath)
	if err != nil {
		return err
	}

	if _, err = io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = fs.Remove(partPath)
		return fmt.Errorf("stream %s: %w", url, err)
	}
	if err = file.Close(); err != nil {
		_ = fs.Remove(partPath)
		return err
	}

	if err = fs.Rename(partPath, destPath); err != nil {
		_ = fs.Remove(partPath)
		return err
	}

	log.Debugf("downloaded %s -> %s", url, destPath)
	return nil
}
