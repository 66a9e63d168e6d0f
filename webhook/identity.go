package webhook

import (
	"fmt"
	"strings"

	"whatsapp-inbox/storage"
)

// GroupSuffix is the jid domain of group chats.
const GroupSuffix = "@g.us"

// unknownName is the sentinel stored when a payload carries no display name.
const unknownName = "Unknown"

// getOrCreateAccount resolves the account for a phone number, creating it on
// first reference. Concurrent first-time deliveries race on the insert; the
// unique index rejects the loser, which then re-reads the winner's row.
func (h *Handler) getOrCreateAccount(phoneNumber, name string) (*storage.Account, error) {
	account, err := h.store.FindAccountByPhone(phoneNumber)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	account = &storage.Account{
		PhoneNumber: phoneNumber,
		Name:        name,
		Status:      storage.StatusConnected,
	}

	insertErr := h.store.InsertAccount(account)
	if insertErr == nil {
		return account, nil
	}

	// Lost the race: another delivery created the row first.
	account, err = h.store.FindAccountByPhone(phoneNumber)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	return nil, fmt.Errorf("insert account %s: %w", phoneNumber, insertErr)
}

// getOrCreateContact resolves the chat for a jid within an account, creating
// it on first reference. Same insert-then-re-read race discipline as
// accounts. A non-empty name refreshes the sentinel on an existing contact.
func (h *Handler) getOrCreateContact(accountID uint, jid, name string, isGroupHint bool) (*storage.Contact, error) {
	contact, err := h.store.FindContactByJID(accountID, jid)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		if name != "" && contact.Name == unknownName {
			if err := h.store.UpdateContactName(contact.ID, name); err != nil {
				return nil, err
			}
			contact.Name = name
		}
		return contact, nil
	}

	if name == "" {
		name = unknownName
	}

	contact = &storage.Contact{
		AccountID: accountID,
		JID:       jid,
		Name:      name,
		IsGroup:   isGroupHint || strings.HasSuffix(jid, GroupSuffix),
	}

	insertErr := h.store.InsertContact(contact)
	if insertErr == nil {
		return contact, nil
	}

	contact, err = h.store.FindContactByJID(accountID, jid)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		return contact, nil
	}

	return nil, fmt.Errorf("insert contact %s: %w", jid, insertErr)
}
