package webhook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnixTime accepts the gateway's two timestamp encodings: unix seconds as a
// JSON number, or an RFC 3339 string. Absent timestamps stay zero.
type UnixTime struct {
	time.Time
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", str, err)
		}
		t.Time = parsed
		return nil
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}
	t.Time = time.Unix(int64(secs), 0)
	return nil
}

// Or returns the carried time, or fallback when the payload had none.
func (t UnixTime) Or(fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t.Time
}

// MessageBody is the message object of a regular-message or edit payload.
type MessageBody struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	QuotedMessage string `json:"quoted_message"`
	RepliedID     string `json:"replied_id"`
}

// MediaBody describes an attachment. The gateway has already downloaded the
// file; only its path and metadata travel in the payload.
type MediaBody struct {
	MimeType  string `json:"mime_type"`
	MediaPath string `json:"media_path"`
	Caption   string `json:"caption"`
}

// LocationBody is a shared location.
type LocationBody struct {
	DegreesLatitude  float64 `json:"degreesLatitude"`
	DegreesLongitude float64 `json:"degreesLongitude"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	JPEGThumbnail    string  `json:"JPEGThumbnail"`
}

// ContactCard is a shared contact (vCard).
type ContactCard struct {
	DisplayName string `json:"displayName"`
	VCard       string `json:"vcard"`
}

// ReactionBody references a target message by provider id.
type ReactionBody struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// EventBody is the nested payload of ack and group-participant events.
type EventBody struct {
	// message.ack
	IDs                    []string `json:"ids"`
	SenderID               string   `json:"sender_id"`
	ReceiptType            int      `json:"receipt_type"`
	ReceiptTypeDescription string   `json:"receipt_type_description"`

	// group.participants
	ChatID string   `json:"chat_id"`
	Type   string   `json:"type"`
	JIDs   []string `json:"jids"`
}

// Payload is the decoded webhook body. The gateway multiplexes every event
// shape onto one endpoint, so this is the union of all of them; Classify
// decides which variant a given payload is.
type Payload struct {
	Message *MessageBody `json:"message"`
	Event   string       `json:"event"`
	Action  string       `json:"action"`

	ChatID    string   `json:"chat_id"`
	From      string   `json:"from"`
	PushName  string   `json:"pushname"`
	Forwarded bool     `json:"forwarded"`
	ViewOnce  bool     `json:"view_once"`
	Timestamp UnixTime `json:"timestamp"`

	Image    *MediaBody    `json:"image"`
	Video    *MediaBody    `json:"video"`
	Audio    *MediaBody    `json:"audio"`
	Document *MediaBody    `json:"document"`
	Sticker  *MediaBody    `json:"sticker"`
	Contact  *ContactCard  `json:"contact"`
	Location *LocationBody `json:"location"`
	Reaction *ReactionBody `json:"reaction"`

	EventPayload *EventBody `json:"payload"`

	RevokedMessageID string `json:"revoked_message_id"`
	RevokedFromMe    bool   `json:"revoked_from_me"`
	EditedText       string `json:"edited_text"`
}

// ParsePayload decodes a verified webhook body.
func ParsePayload(body []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EventKind identifies which of the six event variants a payload is.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventMessage
	EventAck
	EventGroupParticipants
	EventMessageRevoked
	EventMessageEdited
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventAck:
		return "message.ack"
	case EventGroupParticipants:
		return "group.participants"
	case EventMessageRevoked:
		return "message_revoked"
	case EventMessageEdited:
		return "message_edited"
	default:
		return "unknown"
	}
}

// Classify assigns a payload to an event variant. Payload shapes are not
// mutually exclusive on all fields (an edit also carries "message"), so the
// first matching rule wins.
func Classify(p *Payload) EventKind {
	switch {
	case p.Message != nil && p.Event == "" && p.Action == "":
		return EventMessage
	case p.Event == "message.ack":
		return EventAck
	case p.Event == "group.participants":
		return EventGroupParticipants
	case p.Action == "message_revoked":
		return EventMessageRevoked
	case p.Action == "message_edited":
		return EventMessageEdited
	default:
		return EventUnknown
	}
}
