// Package prefs persists the single UI preference that survives a reload:
// the sidebar-collapsed flag. Everything else in the session is ephemeral.
package prefs

import (
	"context"

	"bookflow/utils"

	"github.com/go-redis/redis/v8"
)

// Store reads and writes the persisted preference flags.
type Store struct {
	Client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{Client: client}
}

// SetSidebarCollapsed persists the flag for a principal.
func (s *Store) SetSidebarCollapsed(ctx context.Context, principal string, collapsed bool) error {
	val := "0"
	if collapsed {
		val = "1"
	}
	return s.Client.Set(ctx, utils.PrefsSidebarPrefix+principal, val, 0).Err()
}

// GetSidebarCollapsed reads the flag; a missing key means not collapsed.
func (s *Store) GetSidebarCollapsed(ctx context.Context, principal string) (bool, error) {
	val, err := s.Client.Get(ctx, utils.PrefsSidebarPrefix+principal).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}
