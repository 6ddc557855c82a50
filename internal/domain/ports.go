package domain

import (
	"context"

	"github.com/memoapi/internal/db"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// MemoService defines the user-scoped memo use cases.
// Every method filters by userID; a memo owned by someone else is reported as not found.
type MemoService interface {
	ListMemos(ctx context.Context, userID string) ([]*db.Memo, error)
	CreateMemo(ctx context.Context, userID string, req CreateMemoRequest) (*db.Memo, error)
	UpdateMemo(ctx context.Context, userID string, memoID int64, req UpdateMemoRequest) (*db.Memo, error)
	DeleteMemo(ctx context.Context, userID string, memoID int64) error
}

// ============================================================================
// Request/Response Types
// ============================================================================

// CreateMemoRequest represents the request to create a memo.
// Any user_id sent by the client is not part of the form and is ignored.
type CreateMemoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateMemoRequest represents the request to update a memo.
// Nil fields keep their stored value.
type UpdateMemoRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// AuthForm carries email/password credentials
type AuthForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
