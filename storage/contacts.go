package storage

import (
	"errors"

	"gorm.io/gorm"
)

// FindContactByJID retrieves a contact by (account, jid).
// Returns (nil, nil) when no contact exists.
func (s *Store) FindContactByJID(accountID uint, jid string) (*Contact, error) {
	var contact Contact
	err := s.db.Where("account_id = ? AND jid = ?", accountID, jid).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &contact, nil
}

// InsertContact inserts a new contact row. Duplicate (account, jid) pairs
// fail with gorm.ErrDuplicatedKey; callers re-read on that.
func (s *Store) InsertContact(contact *Contact) error {
	return s.db.Create(contact).Error
}

// UpdateContactName replaces a contact's display name.
func (s *Store) UpdateContactName(contactID uint, name string) error {
	return s.db.Model(&Contact{}).
		Where("id = ?", contactID).
		Update("name", name).Error
}
