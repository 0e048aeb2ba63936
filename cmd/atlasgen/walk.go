package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-collections/collections/queue"
)

// requestFileSuffix marks request files inside a directory tree.
const requestFileSuffix = ".atlas.yml"

// FileTracker is a directory entry waiting to be visited.
type FileTracker struct {
	EntryPath string
	Entry     os.DirEntry
}

// collectRequestFiles returns root itself if it is a file, or every
// *.atlas.yml file under root in breadth-first order.
func collectRequestFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	traverseQueue := queue.New()
	for _, entry := range entries {
		traverseQueue.Enqueue(FileTracker{EntryPath: root, Entry: entry})
	}

	var files []string
	for traverseQueue.Len() > 0 {
		fsEntry := traverseQueue.Dequeue().(FileTracker)
		full := filepath.Join(fsEntry.EntryPath, fsEntry.Entry.Name())

		if fsEntry.Entry.IsDir() {
			entries, err := os.ReadDir(full)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				traverseQueue.Enqueue(FileTracker{EntryPath: full, Entry: entry})
			}
			continue
		}

		if strings.HasSuffix(fsEntry.Entry.Name(), requestFileSuffix) {
			files = append(files, full)
		}
	}

	return files, nil
}

// atlasName derives an atlas name from a request file path.
func atlasName(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{requestFileSuffix, ".yaml", ".yml"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}
