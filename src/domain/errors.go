package domain

import "errors"

// バックエンドストア共通のエラー種別。
// ローカルストアのI/O障害は%wでラップされ各ストアから返される。
var (
	// ErrNotFound is returned when a mutation target does not exist in the backend
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable is returned when the backend cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPermissionDenied is returned when the remote backend rejects the operation
	ErrPermissionDenied = errors.New("permission denied")
)
