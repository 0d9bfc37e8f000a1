package db

import (
	"os"
	"strings"
	"sync"
)

// os.Setenv is process-wide.
var searchPathMu sync.Mutex

// prependSearchPath moves dir to the front of the list in env. Any earlier
// occurrence of dir is dropped, so repeated calls never stack duplicates even
// when other directories were prepended in between.
func prependSearchPath(env, dir string) error {
	if dir == "" {
		return nil
	}

	searchPathMu.Lock()
	defer searchPathMu.Unlock()

	sep := string(os.PathListSeparator)
	current := os.Getenv(env)

	entries := []string{dir}
	if current != "" {
		for _, entry := range strings.Split(current, sep) {
			if entry != dir {
				entries = append(entries, entry)
			}
		}
	}

	next := strings.Join(entries, sep)
	if next == current {
		return nil
	}
	return os.Setenv(env, next)
}
