package storage

import (
	"errors"

	"gorm.io/gorm"
)

// FindAccountByPhone retrieves an account by phone number.
// Returns (nil, nil) when no account exists.
func (s *Store) FindAccountByPhone(phoneNumber string) (*Account, error) {
	var account Account
	err := s.db.Where("phone_number = ?", phoneNumber).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

// InsertAccount inserts a new account row. A concurrent insert of the same
// phone number fails with gorm.ErrDuplicatedKey; callers re-read on that.
func (s *Store) InsertAccount(account *Account) error {
	return s.db.Create(account).Error
}
