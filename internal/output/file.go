package output

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/utils"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o700
)

// FileConfig holds configuration for file output.
type FileConfig struct {
	// Path is the log file path
	Path string
	// FileMode sets the permissions for new log files
	FileMode os.FileMode
	// Sync forces an fsync before the file is closed at the end of a flush
	Sync bool
}

// FileDevice appends flushed records to a file. The file is opened at the start
// of every flush and closed at its end, so nothing is held open between flushes.
type FileDevice struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	mode   os.FileMode
	sync   bool
	size   int64
	opened uint64
}

// NewFileDevice validates the configured path and returns a device for it.
// The directory is created lazily by Open.
func NewFileDevice(config FileConfig) (*FileDevice, error) {
	path, err := utils.CleanLogPath(config.Path)
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid log file path")
	}

	if config.FileMode == 0 {
		config.FileMode = defaultFileMode
	}

	return &FileDevice{
		path: path,
		mode: config.FileMode,
		sync: config.Sync,
	}, nil
}

// Path returns the resolved file path.
func (d *FileDevice) Path() string {
	return d.path
}

// Size returns the file size observed by the last Open plus what was written since.
func (d *FileDevice) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.size
}

// Opens returns how many times the device has been opened.
func (d *FileDevice) Opens() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.opened
}

// Open creates the directory if needed and opens the file for appending.
func (d *FileDevice) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file != nil {
		return nil
	}

	dir := filepath.Dir(d.path)

	err := os.MkdirAll(dir, defaultDirMode)
	if err != nil {
		return ewrap.Wrapf(err, "creating log directory").
			WithMetadata("path", dir)
	}

	file, err := os.OpenFile(d.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, d.mode)
	if err != nil {
		return ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", d.path)
	}

	info, err := file.Stat()
	if err != nil {
		closeErr := file.Close()
		if closeErr != nil {
			return ewrap.Wrapf(closeErr, "closing file").
				WithMetadata("path", d.path).
				WithMetadata("err", err)
		}

		return ewrap.Wrapf(err, "getting file stats").
			WithMetadata("path", d.path)
	}

	d.file = file
	d.size = info.Size()
	d.opened++

	return nil
}

// Write appends one record.
func (d *FileDevice) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return ewrap.Wrap(ErrDeviceNotOpen, "writing log file").WithMetadata("path", d.path)
	}

	written, err := d.file.Write(data)
	d.size += int64(written)

	if err != nil {
		return ewrap.Wrap(err, "failed writing to log file")
	}

	return nil
}

// Close syncs when configured and closes the file. Closing a closed device is a no-op.
func (d *FileDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}

	file := d.file
	d.file = nil

	if d.sync {
		err := file.Sync()
		if err != nil {
			_ = file.Close()

			return ewrap.Wrapf(err, "syncing log file")
		}
	}

	err := file.Close()
	if err != nil {
		return ewrap.Wrapf(err, "closing log file")
	}

	return nil
}

var _ spoollog.Device = (*FileDevice)(nil)
