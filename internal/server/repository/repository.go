// Package repository provides a bounded in-memory storage for the home state of skill users.
// Least recently used homes are evicted once the storage is full.
package repository

import (
	"fmt"

	"github.com/DenisKhanov/ClovaHome/internal/server/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Repository represents an in-memory storage for user home states.
// It uses an LRU cache to associate user IDs with their home state.
type Repository struct {
	homes *lru.Cache[string, models.HomeState] // User IDs and their home states.
}

// NewRepository creates a new instance of Repository holding at most size homes.
// Returns an error if size is not positive.
func NewRepository(size int) (*Repository, error) {
	homes, err := lru.NewWithEvict(size, func(userID string, _ models.HomeState) {
		logrus.Debugf("home state of userID %s evicted", userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create home state cache: %w", err)
	}
	return &Repository{homes: homes}, nil
}

// GetHomeState retrieves the home state of a given user.
// Arguments:
//   - userID: the ID of the user.
//
// Returns a copy of the stored state and true, or the zero state and false if the user has none.
func (r *Repository) GetHomeState(userID string) (models.HomeState, bool) {
	state, ok := r.homes.Get(userID)
	if !ok {
		return models.HomeState{}, false
	}
	return state.Clone(), true
}

// SaveHomeState stores the home state of a given user, replacing any previous one.
// Arguments:
//   - userID: the ID of the user.
//   - state: the home state to save.
func (r *Repository) SaveHomeState(userID string, state models.HomeState) {
	if evicted := r.homes.Add(userID, state.Clone()); evicted {
		logrus.Debug("home state cache is full, the oldest home was evicted")
	}
	logrus.Debugf("saved home state for userID: %s", userID)
}

// Len returns the number of stored homes.
func (r *Repository) Len() int {
	return r.homes.Len()
}
