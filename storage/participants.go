package storage

import (
	"time"

	"gorm.io/gorm/clause"
)

// UpsertGroupMembership records a join, keyed by (group, participant).
// Re-joining resets the active flags: admin is revoked, joined_at is
// refreshed and left_at cleared.
func (s *Store) UpsertGroupMembership(groupID uint, participantJID string, joinedAt time.Time) error {
	participant := GroupParticipant{
		GroupID:        groupID,
		ParticipantJID: participantJID,
		IsAdmin:        false,
		JoinedAt:       joinedAt,
		LeftAt:         nil,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "group_id"}, {Name: "participant_jid"}},
		DoUpdates: clause.Assignments(map[string]any{
			"is_admin":  false,
			"joined_at": joinedAt,
			"left_at":   nil,
		}),
	}).Create(&participant).Error
}

// MarkGroupMembershipLeft sets left_at on the currently-active membership
// row. No-op if the participant has no active membership.
func (s *Store) MarkGroupMembershipLeft(groupID uint, participantJID string, leftAt time.Time) error {
	return s.db.Model(&GroupParticipant{}).
		Where("group_id = ? AND participant_jid = ? AND left_at IS NULL", groupID, participantJID).
		Update("left_at", leftAt).Error
}

// SetGroupMembershipAdmin flips the admin flag on an existing membership
// row. No-op if no row exists; promote/demote never create membership.
func (s *Store) SetGroupMembershipAdmin(groupID uint, participantJID string, isAdmin bool) error {
	return s.db.Model(&GroupParticipant{}).
		Where("group_id = ? AND participant_jid = ?", groupID, participantJID).
		Update("is_admin", isAdmin).Error
}

// ListGroupParticipants returns all membership rows for a group.
func (s *Store) ListGroupParticipants(groupID uint) ([]GroupParticipant, error) {
	var participants []GroupParticipant
	err := s.db.
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	return participants, nil
}
