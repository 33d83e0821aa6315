package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/models"
)

// FileDocumentRepository keeps all documents in memory and mirrors every
// mutation to a single JSON file. It is the zero-infrastructure backend:
// suitable for local development and small deployments where a database is
// not worth running.
type FileDocumentRepository struct {
	mu     sync.RWMutex
	docs   []models.ConfigDocument
	path   string
	logger *logger.Logger
}

// NewFileDocumentRepository loads the JSON file at path (an absent file is an
// empty store) and returns a repository persisting to it.
func NewFileDocumentRepository(path string, log *logger.Logger) (*FileDocumentRepository, error) {
	repo := &FileDocumentRepository{path: path, logger: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("func", "NewFileDocumentRepository").Str("path", path).Msg("store file not found, starting empty")
			return repo, nil
		}
		log.Err(err).Str("func", "NewFileDocumentRepository").Msg("error reading store file")
		return nil, errors.Join(ErrLoadingStore, err)
	}

	if len(data) > 0 {
		if err = json.Unmarshal(data, &repo.docs); err != nil {
			log.Err(err).Str("func", "NewFileDocumentRepository").Msg("error decoding store file")
			return nil, errors.Join(ErrLoadingStore, err)
		}
	}

	return repo, nil
}

// SaveNewVersion appends doc with the next version for its identity+scope
// tuple, persists the whole store and returns the assigned version. On a
// persistence failure the append is rolled back.
func (r *FileDocumentRepository) SaveNewVersion(_ context.Context, doc models.ConfigDocument) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxVersion int64
	for _, stored := range r.docs {
		if stored.Tenant == doc.Tenant && stored.Env == doc.Env &&
			stored.ComponentKey == doc.ComponentKey && stored.ScopeID() == doc.ScopeID() &&
			stored.Version > maxVersion {
			maxVersion = stored.Version
		}
	}

	doc.Version = maxVersion + 1
	doc.Value = models.DeepCopyValue(doc.Value)
	r.docs = append(r.docs, doc)

	if err := r.persist(); err != nil {
		r.docs = r.docs[:len(r.docs)-1]
		return 0, err
	}

	return doc.Version, nil
}

// Scan returns deep copies of every stored version of every scope for the
// identity triple.
func (r *FileDocumentRepository) Scan(_ context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []models.ConfigDocument
	for _, stored := range r.docs {
		if stored.Tenant == tenant && stored.Env == env && stored.ComponentKey == componentKey {
			stored.Value = models.DeepCopyValue(stored.Value)
			docs = append(docs, stored)
		}
	}

	return docs, nil
}

// ComponentKeys returns the distinct component keys stored under tenant/env,
// sorted lexicographically.
func (r *FileDocumentRepository) ComponentKeys(_ context.Context, tenant, env string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, stored := range r.docs {
		if stored.Tenant == tenant && stored.Env == env {
			seen[stored.ComponentKey] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

// DeleteAll removes every document and persists the empty store.
func (r *FileDocumentRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.docs
	r.docs = nil

	if err := r.persist(); err != nil {
		r.docs = previous
		return err
	}

	return nil
}

// DeleteWhere removes all documents matching the exact identity triple and
// persists the result.
func (r *FileDocumentRepository) DeleteWhere(_ context.Context, tenant, env, componentKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.docs
	kept := make([]models.ConfigDocument, 0, len(r.docs))
	for _, stored := range r.docs {
		if stored.Tenant == tenant && stored.Env == env && stored.ComponentKey == componentKey {
			continue
		}
		kept = append(kept, stored)
	}
	r.docs = kept

	if err := r.persist(); err != nil {
		r.docs = previous
		return err
	}

	return nil
}

// persist rewrites the whole store file. Callers must hold the write lock.
func (r *FileDocumentRepository) persist() error {
	data, err := json.MarshalIndent(r.docs, "", "  ")
	if err != nil {
		r.logger.Err(err).Str("func", "persist").Msg("error encoding store")
		return errors.Join(ErrPersistingStore, err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			r.logger.Err(err).Str("func", "persist").Msg("error creating store directory")
			return errors.Join(ErrPersistingStore, err)
		}
	}

	if err = os.WriteFile(r.path, data, 0o644); err != nil {
		r.logger.Err(err).Str("func", "persist").Msg("error writing store file")
		return errors.Join(ErrPersistingStore, err)
	}

	return nil
}
