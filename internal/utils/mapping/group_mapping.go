package mapping

import (
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:             d.GroupID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:             m.GroupID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGroupMember converts a domain GroupMember to a model GroupMember.
// Display fields (name, email, photo) live on the users table and are dropped.
func ToModelGroupMember(d domain.GroupMember) models.GroupMember {
	return models.GroupMember{
		UserID:   d.UserID,
		GroupID:  d.GroupID,
		Role:     models.GroupMemberRole(d.Role),
		Status:   models.GroupMemberStatus(d.Status),
		JoinedAt: d.JoinedAt,
	}
}

// ToDomainGroupMember converts a model GroupMember and its user row to a
// domain GroupMember with display fields populated.
func ToDomainGroupMember(m models.GroupMember, u models.User) domain.GroupMember {
	return domain.GroupMember{
		UserID:   m.UserID,
		GroupID:  m.GroupID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL.String,
		Role:     domain.GroupMemberRole(m.Role),
		Status:   domain.GroupMemberStatus(m.Status),
		JoinedAt: m.JoinedAt,
	}
}
