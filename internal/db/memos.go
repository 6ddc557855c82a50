package db

import (
	"context"
)

// ListMemosByUser returns the user's memos, newest first
func (db *DB) ListMemosByUser(ctx context.Context, userID string) ([]*Memo, error) {
	memos := make([]*Memo, 0)
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&memos).Error
	if err != nil {
		return nil, err
	}
	return memos, nil
}

// CreateMemo inserts a memo and fills in the generated id
func (db *DB) CreateMemo(ctx context.Context, memo *Memo) error {
	return db.WithContext(ctx).Create(memo).Error
}

// GetMemoForUser retrieves a memo by id, scoped to its owner.
// Returns gorm.ErrRecordNotFound when the memo is missing or owned by someone else.
func (db *DB) GetMemoForUser(ctx context.Context, id int64, userID string) (*Memo, error) {
	memo := &Memo{}
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(memo).Error
	if err != nil {
		return nil, err
	}
	return memo, nil
}

// UpdateMemoContent persists title and content; user_id and created_at are left untouched
func (db *DB) UpdateMemoContent(ctx context.Context, memo *Memo) error {
	return db.WithContext(ctx).
		Model(memo).
		Select("title", "content").
		Updates(map[string]interface{}{
			"title":   memo.Title,
			"content": memo.Content,
		}).Error
}

// DeleteMemo removes a memo by id, scoped to its owner
func (db *DB) DeleteMemo(ctx context.Context, memo *Memo) error {
	return db.WithContext(ctx).
		Where("user_id = ?", memo.UserID).
		Delete(memo).Error
}
