package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const logFileName = "pageflip.log"

// LogRotator is an io.Writer that renames the log file once it grows past
// maxSize and keeps at most maxBackups renamed files.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxBackups  int
	currentFile *os.File
	currentSize int64
}

func NewLogRotator(baseDir string, maxSizeMB, maxBackups int) (*LogRotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	r := &LogRotator{
		baseDir:    baseDir,
		baseName:   logFileName,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *LogRotator) openCurrentFile() error {
	logPath := filepath.Join(r.baseDir, r.baseName)

	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close current log file: %v\n", err)
	}
	r.currentFile = nil

	timestamp := time.Now().Format("2006-01-02-15-04-05.000")
	currentPath := filepath.Join(r.baseDir, r.baseName)
	backupPath := filepath.Join(r.baseDir, r.baseName+"."+timestamp)

	if err := os.Rename(currentPath, backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	r.cleanup()

	r.currentSize = 0
	return r.openCurrentFile()
}

func (r *LogRotator) cleanup() {
	if r.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), r.baseName+".") {
			backups = append(backups, entry.Name())
		}
	}
	if len(backups) <= r.maxBackups {
		return
	}

	// Timestamp suffixes sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-r.maxBackups] {
		if err := os.Remove(filepath.Join(r.baseDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
		}
	}
}

func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile != nil {
		err := r.currentFile.Close()
		r.currentFile = nil
		return err
	}
	return nil
}
