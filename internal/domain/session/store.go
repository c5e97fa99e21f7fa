package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, userID uint, token string) (*Session, error) {
	sess := &Session{
		ID:     uuid.NewString(),
		Token:  token,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ?", id).Delete(&VoteMark{}).Error
	if err != nil {
		return errors.Wrap(err, "clear vote marks")
	}
	err = s.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
	return errors.Wrap(err, "delete session")
}

func (s *Store) HasVoted(ctx context.Context, sessionID string, postID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&VoteMark{}).
		Where("session_id = ? AND post_id = ?", sessionID, postID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check vote mark")
	}
	return count > 0, nil
}

func (s *Store) MarkVoted(ctx context.Context, sessionID string, postID uint) error {
	mark := &VoteMark{SessionID: sessionID, PostID: postID}
	err := s.db.WithContext(ctx).Create(mark).Error
	return errors.Wrap(err, "mark voted")
}

// UnmarkVoted reverts an optimistic mark when the upstream vote later turns
// out to have failed.
func (s *Store) UnmarkVoted(ctx context.Context, sessionID string, postID uint) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND post_id = ?", sessionID, postID).
		Delete(&VoteMark{}).Error
	return errors.Wrap(err, "unmark voted")
}
