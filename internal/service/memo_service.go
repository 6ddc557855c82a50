package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/memoapi/internal/db"
	"github.com/memoapi/internal/domain"
)

// memoService implements the MemoService interface
type memoService struct {
	database *db.DB
	logger   *slog.Logger
}

// NewMemoService creates a new memo service
func NewMemoService(database *db.DB, logger *slog.Logger) domain.MemoService {
	return &memoService{
		database: database,
		logger:   logger,
	}
}

// ListMemos returns the caller's memos, newest first
func (s *memoService) ListMemos(ctx context.Context, userID string) ([]*db.Memo, error) {
	s.logger.DebugContext(ctx, "listing memos", "userID", userID)

	memos, err := s.database.ListMemosByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list memos", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("list memos", err)
	}

	// Return empty array instead of null if no memos
	if memos == nil {
		memos = []*db.Memo{}
	}

	return memos, nil
}

// CreateMemo stores a new memo owned by userID
func (s *memoService) CreateMemo(ctx context.Context, userID string, req domain.CreateMemoRequest) (*db.Memo, error) {
	memo := db.NewMemo(userID, req.Title, req.Content)

	if err := s.database.CreateMemo(ctx, memo); err != nil {
		s.logger.ErrorContext(ctx, "failed to create memo", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("create memo", err)
	}

	s.logger.InfoContext(ctx, "memo created", "userID", userID, "memoID", memo.ID)
	return memo, nil
}

// UpdateMemo overwrites title and/or content of a memo the caller owns
func (s *memoService) UpdateMemo(ctx context.Context, userID string, memoID int64, req domain.UpdateMemoRequest) (*db.Memo, error) {
	memo, err := s.findOwned(ctx, userID, memoID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		memo.Title = *req.Title
	}
	if req.Content != nil {
		memo.Content = *req.Content
	}

	if err := s.database.UpdateMemoContent(ctx, memo); err != nil {
		s.logger.ErrorContext(ctx, "failed to update memo", "userID", userID, "memoID", memoID, "error", err)
		return nil, domain.WrapDatabaseOperation("update memo", err)
	}

	s.logger.InfoContext(ctx, "memo updated", "userID", userID, "memoID", memoID)
	return memo, nil
}

// DeleteMemo removes a memo the caller owns
func (s *memoService) DeleteMemo(ctx context.Context, userID string, memoID int64) error {
	memo, err := s.findOwned(ctx, userID, memoID)
	if err != nil {
		return err
	}

	if err := s.database.DeleteMemo(ctx, memo); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete memo", "userID", userID, "memoID", memoID, "error", err)
		return domain.WrapDatabaseOperation("delete memo", err)
	}

	s.logger.InfoContext(ctx, "memo deleted", "userID", userID, "memoID", memoID)
	return nil
}

// findOwned loads a memo by (id, owner). Missing and foreign memos are indistinguishable.
func (s *memoService) findOwned(ctx context.Context, userID string, memoID int64) (*db.Memo, error) {
	memo, err := s.database.GetMemoForUser(ctx, memoID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.DebugContext(ctx, "memo not found", "userID", userID, "memoID", memoID)
		return nil, domain.WrapMemoNotFound(memoID, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load memo", "userID", userID, "memoID", memoID, "error", err)
		return nil, domain.WrapDatabaseOperation("get memo", err)
	}
	return memo, nil
}
