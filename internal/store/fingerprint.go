package store

import (
	"os"
	"strings"
	"time"
)

// Fingerprint is a cheap summary of a directory used to detect changes
// between polls without reading file contents.
type Fingerprint struct {
	Exists     bool
	DirModTime time.Time
	Entries    int
	Bytes      int64
	MaxModTime time.Time
}

func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.Exists == o.Exists &&
		f.Entries == o.Entries &&
		f.Bytes == o.Bytes &&
		f.DirModTime.Equal(o.DirModTime) &&
		f.MaxModTime.Equal(o.MaxModTime)
}

// Fingerprint summarizes the *.json files of one list.
func (s Store) Fingerprint(listID string) Fingerprint {
	return fingerprintDir(s.ListDir(listID), func(e os.DirEntry) bool {
		return !e.IsDir() && strings.HasSuffix(e.Name(), ".json")
	})
}

// ListsFingerprint summarizes the list directories under TasksDir.
func (s Store) ListsFingerprint() Fingerprint {
	return fingerprintDir(s.TasksDir, func(e os.DirEntry) bool { return e.IsDir() })
}

func fingerprintDir(dir string, include func(os.DirEntry) bool) Fingerprint {
	st, err := os.Stat(dir)
	if err != nil {
		return Fingerprint{}
	}
	fp := Fingerprint{Exists: true, DirModTime: st.ModTime()}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fp
	}
	for _, e := range entries {
		if !include(e) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		fp.Entries++
		if !info.IsDir() {
			fp.Bytes += info.Size()
		}
		if info.ModTime().After(fp.MaxModTime) {
			fp.MaxModTime = info.ModTime()
		}
	}
	return fp
}
