package build

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// copyDirContents recursively copies the files and directories under src
// into dst.
func copyDirContents(src, dst string, logger *slog.Logger) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			// os.ModePerm is narrowed by the umask; source permissions may be read-only.
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(path, dstPath, logger); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", path, dstPath, err)
		}
		return nil
	})
}

// copyFile copies a single file, creating the destination directory and
// keeping the source file mode.
func copyFile(srcFile, dstFile string, logger *slog.Logger) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	dstDir := filepath.Dir(dstFile)
	if err := os.MkdirAll(dstDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dstDir, err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", srcFile, dstFile, err)
	}

	srcInfo, err := srcF.Stat()
	if err != nil {
		logger.Warn("Could not stat source file to preserve permissions", "path", srcFile, "error", err)
		return nil
	}
	if err := os.Chmod(dstFile, srcInfo.Mode()); err != nil {
		logger.Warn("Could not set permissions", "path", dstFile, "error", err)
	}
	return nil
}
