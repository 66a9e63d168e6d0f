package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateMessage is returned when a message with the same provider
// message id already exists for the account. Webhook delivery is
// at-least-once, so this is an expected condition, not a failure.
var ErrDuplicateMessage = errors.New("message already stored")

// InsertMessage inserts a new message row. The unique (account_id,
// message_id) index rejects redelivered payloads.
func (s *Store) InsertMessage(msg *Message) error {
	err := s.db.Create(msg).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMessage
	}
	return err
}

// FindMessageByProviderID retrieves a message by its provider-assigned id.
// Returns (nil, nil) when no message exists.
func (s *Store) FindMessageByProviderID(accountID uint, providerID string) (*Message, error) {
	var msg Message
	err := s.db.Where("account_id = ? AND message_id = ?", accountID, providerID).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &msg, nil
}

// UpdateMessageText overwrites the displayed text of a message (used for
// edits, revocations and vCard serialization).
func (s *Store) UpdateMessageText(messageID uint, text string) error {
	return s.db.Model(&Message{}).
		Where("id = ?", messageID).
		Update("text", text).Error
}

// InsertMedia records attachment metadata for a message. The unique
// message_id index keeps at most one media row per message; redelivered
// payloads are a no-op.
func (s *Store) InsertMedia(media *MessageMedia) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoNothing: true,
	}).Create(media).Error
}

// InsertLocation records a shared location for a message (0 or 1 per message).
func (s *Store) InsertLocation(location *MessageLocation) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoNothing: true,
	}).Create(location).Error
}

// InsertReaction appends a reaction row.
func (s *Store) InsertReaction(reaction *MessageReaction) error {
	return s.db.Create(reaction).Error
}

// InsertReceipt appends a delivery/read receipt row.
func (s *Store) InsertReceipt(receipt *MessageReceipt) error {
	return s.db.Create(receipt).Error
}

// InsertRevoke records a revocation. A message already marked revoked keeps
// its original row; repeat events are a no-op.
func (s *Store) InsertRevoke(revoke *MessageRevoke) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoNothing: true,
	}).Create(revoke).Error
}

// InsertEdit appends an edit-history row.
func (s *Store) InsertEdit(edit *MessageEdit) error {
	return s.db.Create(edit).Error
}
