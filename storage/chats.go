package storage

import (
	"time"
)

// ChatWithLastMessage is a DTO for the chat list: a contact enriched with
// its most recent message.
type ChatWithLastMessage struct {
	Contact
	LastMessageText string      `json:"last_message_text"`
	LastMessageType MessageType `json:"last_message_type"`
	LastMessageAt   *time.Time  `json:"last_message_at"`
}

// ListChats returns an account's chats ordered by most recent activity,
// each joined with its latest message. Chats with no messages sort last.
func (s *Store) ListChats(accountID uint, limit int) ([]ChatWithLastMessage, error) {
	var results []ChatWithLastMessage

	err := s.db.
		Table("contacts").
		Select(`
			contacts.*,
			COALESCE(m.text, '') as last_message_text,
			COALESCE(m.type, '') as last_message_type,
			m.created_at as last_message_at
		`).
		Joins(`LEFT JOIN messages m ON m.id = (
			SELECT id FROM messages
			WHERE chat_id = contacts.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)`).
		Where("contacts.account_id = ?", accountID).
		Order("m.created_at DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
