// Package store holds the interaction dataset for the lifetime of the process.
// A Store is built once by Load and is read-only afterwards, so it is shared by
// every request handler without locking.
package store

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/models"
	"github.com/ligandscope/core/internal/parser"
)

// Store maps pair keys to validated bundles.
type Store struct {
	bundles map[models.PairKey]*models.InteractionBundle
	keys    []models.PairKey
}

// New builds a store from already parsed bundles.
func New(bundles map[models.PairKey]*models.InteractionBundle) *Store {
	s := &Store{bundles: make(map[models.PairKey]*models.InteractionBundle, len(bundles))}
	for k, b := range bundles {
		s.bundles[k] = b
		s.keys = append(s.keys, k)
	}
	sort.Slice(s.keys, func(i, j int) bool { return s.keys[i] < s.keys[j] })
	return s
}

// Load reads, parses and validates the whole dataset from src.
func Load(ctx context.Context, src Source, log logging.Logger) (*Store, error) {
	start := time.Now()

	r, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", src, err)
	}

	bundles, err := parser.ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", src, err)
	}

	s := New(bundles)
	log.Info("dataset loaded",
		logging.String("source", src.String()),
		logging.Int("pairs", s.Len()),
		logging.Int("bytes", len(data)),
		logging.Duration("took", time.Since(start)),
	)
	return s, nil
}

// Lookup returns the bundle of key or a MissingDataError.
func (s *Store) Lookup(key models.PairKey) (*models.InteractionBundle, error) {
	b, ok := s.bundles[key]
	if !ok {
		return nil, &models.MissingDataError{Key: key}
	}
	return b, nil
}

// Pairs returns every pair key in lexical order.
func (s *Store) Pairs() []models.PairKey {
	return append([]models.PairKey(nil), s.keys...)
}

// Len returns the number of bundles.
func (s *Store) Len() int {
	return len(s.bundles)
}
