// Package parser turns semi-structured governance documents (proposal
// files, core dev meeting notes) into normalized records.
package parser

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger = logrus.StandardLogger().WithField("module", "parser")

// Document is one source file, read into memory before parsing
type Document struct {
	Name    string
	Content string
}

// ReadDocuments loads all files matching pattern below dir. The returned
// slice is sorted by name so batch output is reproducible.
func ReadDocuments(dir, pattern string) ([]Document, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "error globbing %v in %v", pattern, dir)
	}
	sort.Strings(matches)

	docs := make([]Document, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading document %v", path)
		}
		docs = append(docs, Document{Name: filepath.Base(path), Content: string(data)})
	}
	return docs, nil
}

// processDocuments parses every document with up to workers goroutines.
// Per-document failures are collected, never propagated; input order is
// preserved in the success slice.
func processDocuments[T any](docs []Document, workers int, parse func(Document) (T, *types.ParseFailure)) ([]T, []types.ParseFailure) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*T, len(docs))
	var mu sync.Mutex
	var failures []types.ParseFailure

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range docs {
		i := i
		g.Go(func() error {
			record, failure := parse(docs[i])
			if failure != nil {
				mu.Lock()
				failures = append(failures, *failure)
				mu.Unlock()
				return nil
			}
			results[i] = &record
			return nil
		})
	}
	g.Wait()

	out := make([]T, 0, len(docs))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Document < failures[j].Document })
	return out, failures
}
