package webhook

import (
	"time"

	"whatsapp-inbox/storage"
)

// Repository is the persistence contract the ingestion engine depends on.
// *storage.Store implements it; tests may substitute their own. Every method
// is atomic at the single-row level and safe to repeat, since webhook
// delivery is at-least-once. Finders return (nil, nil) on a miss.
type Repository interface {
	FindAccountByPhone(phoneNumber string) (*storage.Account, error)
	InsertAccount(account *storage.Account) error

	FindContactByJID(accountID uint, jid string) (*storage.Contact, error)
	InsertContact(contact *storage.Contact) error
	UpdateContactName(contactID uint, name string) error

	InsertMessage(msg *storage.Message) error
	FindMessageByProviderID(accountID uint, providerID string) (*storage.Message, error)
	UpdateMessageText(messageID uint, text string) error

	InsertMedia(media *storage.MessageMedia) error
	InsertLocation(location *storage.MessageLocation) error
	InsertReaction(reaction *storage.MessageReaction) error
	InsertReceipt(receipt *storage.MessageReceipt) error

	UpsertGroupMembership(groupID uint, participantJID string, joinedAt time.Time) error
	MarkGroupMembershipLeft(groupID uint, participantJID string, leftAt time.Time) error
	SetGroupMembershipAdmin(groupID uint, participantJID string, isAdmin bool) error

	InsertRevoke(revoke *storage.MessageRevoke) error
	InsertEdit(edit *storage.MessageEdit) error
}

var _ Repository = (*storage.Store)(nil)
