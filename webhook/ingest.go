package webhook

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"whatsapp-inbox/storage"
)

// DeletedPlaceholder replaces the text of revoked messages.
const DeletedPlaceholder = "[Message was deleted]"

// messageType determines the type of a regular message by checking content
// fields in fixed priority order.
func messageType(p *Payload) storage.MessageType {
	switch {
	case p.Image != nil:
		return storage.TypeImage
	case p.Video != nil:
		return storage.TypeVideo
	case p.Audio != nil:
		return storage.TypeAudio
	case p.Document != nil:
		return storage.TypeDocument
	case p.Sticker != nil:
		return storage.TypeSticker
	case p.Contact != nil:
		return storage.TypeContact
	case p.Location != nil:
		return storage.TypeLocation
	default:
		return storage.TypeText
	}
}

// firstMedia returns the first attachment present, scanning the same fixed
// order as messageType. At most one media row is written per message.
func firstMedia(p *Payload) (*MediaBody, string) {
	switch {
	case p.Image != nil:
		return p.Image, "image"
	case p.Video != nil:
		return p.Video, "video"
	case p.Audio != nil:
		return p.Audio, "audio"
	case p.Document != nil:
		return p.Document, "document"
	case p.Sticker != nil:
		return p.Sticker, "sticker"
	default:
		return nil, ""
	}
}

// handleMessage persists a regular message and fans out its sub-entities.
//
// The message insert is the primary effect: if it fails the request fails and
// the gateway redelivers. Child writes (media, location, vCard, reaction)
// log-and-continue instead, because once the message row is stored the
// gateway will never resend this payload.
func (h *Handler) handleMessage(account *storage.Account, p *Payload, now time.Time, log zerolog.Logger) error {
	chatJID := p.ChatID
	if chatJID == "" {
		chatJID = p.From
	}

	isGroup := strings.HasSuffix(chatJID, GroupSuffix) || strings.HasSuffix(p.From, GroupSuffix)

	contact, err := h.getOrCreateContact(account.ID, chatJID, p.PushName, isGroup)
	if err != nil {
		return err
	}

	msg := &storage.Message{
		AccountID:     account.ID,
		ChatID:        contact.ID,
		SenderJID:     p.From,
		MessageID:     p.Message.ID,
		Type:          messageType(p),
		Text:          p.Message.Text,
		QuotedMessage: p.Message.QuotedMessage,
		RepliedToID:   p.Message.RepliedID,
		Forwarded:     p.Forwarded,
		ViewOnce:      p.ViewOnce,
		CreatedAt:     p.Timestamp.Or(now),
	}

	if err := h.store.InsertMessage(msg); err != nil {
		if errors.Is(err, storage.ErrDuplicateMessage) {
			log.Debug().Str("message_id", p.Message.ID).Msg("skipping redelivered message")
			return nil
		}
		return err
	}

	if media, mediaType := firstMedia(p); media != nil {
		err := h.store.InsertMedia(&storage.MessageMedia{
			MessageID: msg.ID,
			MediaType: mediaType,
			MimeType:  media.MimeType,
			FilePath:  media.MediaPath,
			Caption:   media.Caption,
		})
		if err != nil {
			log.Warn().Err(err).Str("message_id", p.Message.ID).Msg("failed to save media")
		}
	}

	if p.Location != nil {
		err := h.store.InsertLocation(&storage.MessageLocation{
			MessageID: msg.ID,
			Latitude:  p.Location.DegreesLatitude,
			Longitude: p.Location.DegreesLongitude,
			Name:      p.Location.Name,
			Address:   p.Location.Address,
			Thumbnail: p.Location.JPEGThumbnail,
		})
		if err != nil {
			log.Warn().Err(err).Str("message_id", p.Message.ID).Msg("failed to save location")
		}
	}

	// Shared contacts have no table of their own; the card is serialized
	// into the message text.
	if p.Contact != nil {
		card, err := json.Marshal(p.Contact)
		if err == nil {
			err = h.store.UpdateMessageText(msg.ID, string(card))
		}
		if err != nil {
			log.Warn().Err(err).Str("message_id", p.Message.ID).Msg("failed to save contact card")
		}
	}

	if p.Reaction != nil {
		target, err := h.store.FindMessageByProviderID(account.ID, p.Reaction.ID)
		if err != nil {
			log.Warn().Err(err).Msg("failed to look up reaction target")
		} else if target == nil {
			// Target not ingested yet; the reaction is dropped rather
			// than failing the whole delivery.
			log.Debug().Str("target_id", p.Reaction.ID).Msg("reaction target not found")
		} else {
			err := h.store.InsertReaction(&storage.MessageReaction{
				MessageID: target.ID,
				SenderJID: p.From,
				Reaction:  p.Reaction.Message,
			})
			if err != nil {
				log.Warn().Err(err).Msg("failed to save reaction")
			}
		}
	}

	log.Info().Str("message_id", p.Message.ID).Str("chat", chatJID).Msg("saved message")
	return nil
}

// handleAck appends one receipt per acknowledged message id. Ids that
// reference messages never ingested are skipped; one missing id must not
// abort the rest of the batch.
func (h *Handler) handleAck(account *storage.Account, p *Payload, now time.Time, log zerolog.Logger) error {
	ack := p.EventPayload
	if ack == nil {
		log.Warn().Msg("ack event without payload")
		return nil
	}

	createdAt := p.Timestamp.Or(now)

	for _, providerID := range ack.IDs {
		msg, err := h.store.FindMessageByProviderID(account.ID, providerID)
		if err != nil {
			return err
		}
		if msg == nil {
			log.Debug().Str("message_id", providerID).Msg("ack for unknown message")
			continue
		}

		err = h.store.InsertReceipt(&storage.MessageReceipt{
			MessageID:    msg.ID,
			RecipientJID: ack.SenderID,
			ReceiptType:  ack.ReceiptType,
			Description:  ack.ReceiptTypeDescription,
			CreatedAt:    createdAt,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// handleGroupParticipants applies a membership action uniformly to a batch
// of participant jids.
func (h *Handler) handleGroupParticipants(account *storage.Account, p *Payload, now time.Time, log zerolog.Logger) error {
	ev := p.EventPayload
	if ev == nil {
		log.Warn().Msg("group event without payload")
		return nil
	}

	group, err := h.getOrCreateContact(account.ID, ev.ChatID, "", true)
	if err != nil {
		return err
	}

	eventTime := p.Timestamp.Or(now)

	for _, jid := range ev.JIDs {
		switch ev.Type {
		case "join":
			err = h.store.UpsertGroupMembership(group.ID, jid, eventTime)
		case "leave":
			err = h.store.MarkGroupMembershipLeft(group.ID, jid, eventTime)
		case "promote":
			err = h.store.SetGroupMembershipAdmin(group.ID, jid, true)
		case "demote":
			err = h.store.SetGroupMembershipAdmin(group.ID, jid, false)
		default:
			log.Warn().Str("type", ev.Type).Msg("unknown participant action")
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// handleRevoke marks a message deleted and records who revoked it. A revoke
// for a message never ingested is a no-op.
func (h *Handler) handleRevoke(account *storage.Account, p *Payload, now time.Time, log zerolog.Logger) error {
	msg, err := h.store.FindMessageByProviderID(account.ID, p.RevokedMessageID)
	if err != nil {
		return err
	}
	if msg == nil {
		log.Debug().Str("message_id", p.RevokedMessageID).Msg("revoke for unknown message")
		return nil
	}

	err = h.store.InsertRevoke(&storage.MessageRevoke{
		MessageID:    msg.ID,
		RevokedByJID: p.From,
		RevokedAt:    p.Timestamp.Or(now),
		RevokedForMe: p.RevokedFromMe,
	})
	if err != nil {
		return err
	}

	return h.store.UpdateMessageText(msg.ID, DeletedPlaceholder)
}

// handleEdit appends an edit-history row and overwrites the message text
// with the latest content. An edit for a message never ingested is a no-op.
func (h *Handler) handleEdit(account *storage.Account, p *Payload, now time.Time, log zerolog.Logger) error {
	if p.Message == nil {
		log.Warn().Msg("edit event without message reference")
		return nil
	}

	msg, err := h.store.FindMessageByProviderID(account.ID, p.Message.ID)
	if err != nil {
		return err
	}
	if msg == nil {
		log.Debug().Str("message_id", p.Message.ID).Msg("edit for unknown message")
		return nil
	}

	err = h.store.InsertEdit(&storage.MessageEdit{
		MessageID:  msg.ID,
		EditedText: p.EditedText,
		EditedAt:   p.Timestamp.Or(now),
	})
	if err != nil {
		return err
	}

	return h.store.UpdateMessageText(msg.ID, p.EditedText)
}
