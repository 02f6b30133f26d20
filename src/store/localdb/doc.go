package localdb

import "database/sql"

// nullString stores empty back-references as NULL so partial indexes stay small
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
