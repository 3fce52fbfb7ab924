// Package memory holds an in-process SessionStorage for single-instance
// deployments and local development.
package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/edusaas/portal-gate/internal/core/ports"
)

const table = "session_value"

type entry struct {
	SessionID string
	Key       string
	Value     string
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:   "id",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "SessionID"},
								&memdb.StringFieldIndex{Field: "Key"},
							},
						},
					},
					"session": {
						Name:    "session",
						Indexer: &memdb.StringFieldIndex{Field: "SessionID"},
					},
				},
			},
		},
	}
}

// SessionStorage implements ports.SessionStorage on go-memdb. Values vanish
// with the process.
type SessionStorage struct {
	db *memdb.MemDB
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

func NewSessionStorage() (*SessionStorage, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("memdb: %w", err)
	}
	return &SessionStorage{db: db}, nil
}

func (s *SessionStorage) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, "id", sessionID, key)
	if err != nil {
		return "", false, fmt.Errorf("session get %s: %w", key, err)
	}
	if raw == nil {
		return "", false, nil
	}
	return raw.(*entry).Value, true, nil
}

func (s *SessionStorage) Set(_ context.Context, sessionID, key, value string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(table, &entry{SessionID: sessionID, Key: key, Value: value}); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (s *SessionStorage) Delete(_ context.Context, sessionID, key string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(table, "id", sessionID, key); err != nil {
		return fmt.Errorf("session delete %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (s *SessionStorage) DeleteSession(_ context.Context, sessionID string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(table, "session", sessionID); err != nil {
		return fmt.Errorf("session drop: %w", err)
	}
	txn.Commit()
	return nil
}
