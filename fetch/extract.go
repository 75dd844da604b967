package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vgmirror-cli/vgmirror/filesystem"
)

// extract unpacks every entry of the zip archive at archivePath into destDir.
// On any failure it removes everything it wrote so no partially extracted
// state survives. The archive is read in place, never buffered whole;
// soundtrack zips run to hundreds of megabytes.
func extract(archivePath, destDir string) error {
	fs := filesystem.API()

	archive, err := fs.Open(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	info, err := archive.Stat()
	if err != nil {
		return err
	}

	reader, err := zip.NewReader(archive, info.Size())
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	var written []string
	rollback := func() {
		for i := len(written) - 1; i >= 0; i-- {
			_ = fs.Remove(written[i])
		}
	}

	for _, entry := range reader.File {
		target, err := entryPath(destDir, entry.Name)
		if err != nil {
			rollback()
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, os.ModePerm); err != nil {
				rollback()
				return err
			}
			continue
		}

		if err := writeEntry(entry, target); err != nil {
			rollback()
			return fmt.Errorf("entry %s: %w", entry.Name, err)
		}
		written = append(written, target)
	}

	return nil
}

func writeEntry(entry *zip.File, target string) error {
	fs := filesystem.API()

	if err := fs.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := fs.Create(target)
	if err != nil {
		return err
	}

	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = fs.Remove(target)
		return err
	}
	return dst.Close()
}

// entryPath resolves an archive entry name inside destDir, rejecting names
// that would escape it.
func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean("/"+name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return target, nil
}
