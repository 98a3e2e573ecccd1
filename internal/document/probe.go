// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document turns files on disk into engine Documents. It probes
// whether a file is really present (cloud-sync services leave small
// placeholder stubs), decodes the leading pages to text, and reads the
// embedded information dictionary. Every failure degrades the document to
// unavailable; nothing here aborts a scan.
package document

import (
	"os"
	"time"
)

// DefaultPlaceholderSize is the size in bytes below which a file is taken
// to be a sync placeholder rather than a downloaded document.
const DefaultPlaceholderSize = 1024

// Probe is the result of checking a file on disk.
type Probe struct {
	Available bool
	SizeBytes int64
	ModTime   time.Time
}

// SizeMB returns the file size in megabytes.
func (p Probe) SizeMB() float64 {
	return float64(p.SizeBytes) / (1024 * 1024)
}

// ProbeFile reports whether path is a locally available document. Missing
// files, stat errors, and files smaller than placeholderSize are
// unavailable. A placeholderSize of zero or less uses DefaultPlaceholderSize.
func ProbeFile(path string, placeholderSize int64) Probe {
	if placeholderSize <= 0 {
		placeholderSize = DefaultPlaceholderSize
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Probe{}
	}
	return Probe{
		Available: info.Size() >= placeholderSize,
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}
}
