package clouddb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"taskman-app/src/domain"
)

// Collection names under the per-user namespace
const (
	colTasks    = "tasks"
	colProjects = "projects"
	colClients  = "clients"
	colPayments = "payments"
	colNotes    = "notes"
	colFiles    = "files"
)

// Scope is a per-user view of the document table.
// domain.Backendを実装する
type Scope struct {
	db     *DB
	userID string
}

// UserID returns the scoped user identifier
func (s *Scope) UserID() string {
	return s.userID
}

func (s *Scope) listDocs(ctx context.Context, collection string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM documents
		WHERE user_id = $1 AND collection = $2
		ORDER BY created_at ASC`, s.userID, collection)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return docs, nil
}

// listDocsByField returns docs whose top-level field matches the value
func (s *Scope) listDocsByField(ctx context.Context, collection, field, value string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM documents
		WHERE user_id = $1 AND collection = $2 AND doc->>$3 = $4
		ORDER BY created_at ASC`, s.userID, collection, field, value)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return docs, nil
}

func (s *Scope) putDoc(ctx context.Context, collection, id string, doc []byte, createdAt, updatedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, collection, id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, collection, id) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		s.userID, collection, id, doc, createdAt, updatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Scope) deleteDoc(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE user_id = $1 AND collection = $2 AND id = $3`,
		s.userID, collection, id)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// deleteDocsByField removes all docs whose top-level field matches the value
func (s *Scope) deleteDocsByField(ctx context.Context, collection, field, value string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE user_id = $1 AND collection = $2 AND doc->>$3 = $4`,
		s.userID, collection, field, value)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// mapError classifies backend failures into domain error kinds.
// 認可エラーはErrPermissionDenied、接続系はErrStoreUnavailableに寄せる
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "insufficient_privilege":
			return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
		}
		return fmt.Errorf("cloud store error: %w", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("cloud store error: %w", err)
}
