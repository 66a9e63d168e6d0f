package storage

import (
	"time"
)

// MessageType classifies a message by its primary content field.
type MessageType string

const (
	TypeText     MessageType = "text"
	TypeImage    MessageType = "image"
	TypeVideo    MessageType = "video"
	TypeAudio    MessageType = "audio"
	TypeDocument MessageType = "document"
	TypeSticker  MessageType = "sticker"
	TypeContact  MessageType = "contact"
	TypeLocation MessageType = "location"
)

// Account status values.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// Account represents a connected WhatsApp identity (one per phone number).
type Account struct {
	ID          uint      `gorm:"primaryKey"`
	PhoneNumber string    `gorm:"type:text;not null;uniqueIndex"`
	Name        string    `gorm:"type:text"`
	Status      string    `gorm:"type:text;not null;default:'connected'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// Relationships
	Contacts []Contact `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// Contact represents a chat (individual or group) scoped to an account.
type Contact struct {
	ID               uint      `gorm:"primaryKey"`
	AccountID        uint      `gorm:"not null;uniqueIndex:idx_account_jid"`
	JID              string    `gorm:"column:jid;type:text;not null;uniqueIndex:idx_account_jid"`
	Name             string    `gorm:"type:text"`
	IsGroup          bool      `gorm:"not null;default:false"`
	GroupSubject     string    `gorm:"type:text"`
	GroupDescription string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	// Relationships
	Messages     []Message          `gorm:"foreignKey:ChatID"`
	Participants []GroupParticipant `gorm:"foreignKey:GroupID"`
}

// Message represents a stored message. MessageID is the provider-assigned id,
// unique per account, and is how later events (acks, edits, revokes,
// reactions) find the row again.
type Message struct {
	ID            uint        `gorm:"primaryKey"`
	AccountID     uint        `gorm:"not null;uniqueIndex:idx_account_message_id"`
	ChatID        uint        `gorm:"not null;index:idx_chat_created"`
	SenderJID     string      `gorm:"column:sender_jid;type:text;not null;index:idx_sender"`
	MessageID     string      `gorm:"type:text;not null;uniqueIndex:idx_account_message_id"`
	Type          MessageType `gorm:"type:text;not null"`
	Text          string      `gorm:"type:text"`
	QuotedMessage string      `gorm:"type:text"`
	RepliedToID   string      `gorm:"type:text"`
	Forwarded     bool        `gorm:"not null;default:false"`
	ViewOnce      bool        `gorm:"not null;default:false"`
	CreatedAt     time.Time   `gorm:"not null;index:idx_chat_created,sort:desc"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`

	// Relationships
	Chat      Contact           `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	Media     *MessageMedia     `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Location  *MessageLocation  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Reactions []MessageReaction `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Receipts  []MessageReceipt  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Edits     []MessageEdit     `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Revoke    *MessageRevoke    `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// MessageMedia holds attachment metadata. At most one row per message; the
// media file itself lives outside the database (file_path only).
type MessageMedia struct {
	ID        uint   `gorm:"primaryKey"`
	MessageID uint   `gorm:"not null;uniqueIndex"`
	MediaType string `gorm:"type:text;not null"`
	MimeType  string `gorm:"type:text"`
	FilePath  string `gorm:"type:text;not null"`
	Caption   string `gorm:"type:text"`
}

// MessageLocation holds a shared location. 0 or 1 per message.
type MessageLocation struct {
	ID        uint    `gorm:"primaryKey"`
	MessageID uint    `gorm:"not null;uniqueIndex"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Name      string  `gorm:"type:text"`
	Address   string  `gorm:"type:text"`
	Thumbnail string  `gorm:"type:text"` // base64 JPEG
}

// MessageReaction is an append-only record of a reaction to a message.
type MessageReaction struct {
	ID        uint      `gorm:"primaryKey"`
	MessageID uint      `gorm:"not null;index"`
	SenderJID string    `gorm:"column:sender_jid;type:text;not null"`
	Reaction  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// MessageReceipt is an append-only delivery/read receipt, one row per ack
// batch entry.
type MessageReceipt struct {
	ID           uint      `gorm:"primaryKey"`
	MessageID    uint      `gorm:"not null;index"`
	RecipientJID string    `gorm:"column:recipient_jid;type:text;not null"`
	ReceiptType  int       `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

// GroupParticipant represents a member of a group chat. One row ever exists
// per (group, participant); LeftAt is null while the membership is active.
type GroupParticipant struct {
	GroupID        uint      `gorm:"primaryKey;autoIncrement:false"`
	ParticipantJID string    `gorm:"column:participant_jid;primaryKey;type:text"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	JoinedAt       time.Time `gorm:"not null"`
	LeftAt         *time.Time

	// Relationships
	Group Contact `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// MessageRevoke records a message deletion. At most one per message.
type MessageRevoke struct {
	ID           uint      `gorm:"primaryKey"`
	MessageID    uint      `gorm:"not null;uniqueIndex"`
	RevokedByJID string    `gorm:"column:revoked_by_jid;type:text"`
	RevokedAt    time.Time `gorm:"not null"`
	RevokedForMe bool      `gorm:"not null;default:false"`
}

// MessageEdit is an append-only edit history entry. Message.Text always
// reflects the latest edit.
type MessageEdit struct {
	ID         uint      `gorm:"primaryKey"`
	MessageID  uint      `gorm:"not null;index"`
	EditedText string    `gorm:"type:text;not null"`
	EditedAt   time.Time `gorm:"not null"`
}

// Models lists every persisted model in creation order (parents first), for
// AutoMigrate.
func Models() []any {
	return []any{
		&Account{},
		&Contact{},
		&Message{},
		&MessageMedia{},
		&MessageLocation{},
		&MessageReaction{},
		&MessageReceipt{},
		&GroupParticipant{},
		&MessageRevoke{},
		&MessageEdit{},
	}
}
