package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// RoleStore defines the database operations needed to reassign a role
type RoleStore interface {
	GetUserByVolunteerID(ctx context.Context, volunteerID string) (*db.User, error)
	GetGroup(ctx context.Context, id string) (*db.Group, error)
	ReassignRole(ctx context.Context, change db.RoleChange) error
}

// RoleUpdate describes a change of a volunteer's role.
// GroupID is required when promoting to MANAGER and ignored for VOLUNTEER.
type RoleUpdate struct {
	VolunteerID string  `validate:"required"`
	Role        db.Role `validate:"required"`
	GroupID     string
}

// UpdateVolunteerRole resets every LEADER membership of the volunteer to
// MEMBER, makes them LEADER of the requested group and updates the user
// role, all in one transaction. Promoting to ADMIN without a group only
// changes the user role. Only admins may call it.
func UpdateVolunteerRole(
	ctx context.Context,
	store RoleStore,
	logger *zap.Logger,
	caller *model.Caller,
	req RoleUpdate,
) (*db.RoleChange, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, forbidden()
	}
	if err := validate.Struct(req); err != nil || !req.Role.IsValid() {
		return nil, invalid("Rol inválido")
	}

	switch req.Role {
	case db.RoleManager:
		if req.GroupID == "" {
			return nil, invalid("Un encargado debe tener un grupo asignado")
		}
	case db.RoleVolunteer:
		req.GroupID = ""
	}

	user, err := store.GetUserByVolunteerID(ctx, req.VolunteerID)
	if err != nil {
		logger.Error("Failed to fetch user", zap.String("volunteer_id", req.VolunteerID), zap.Error(err))
		return nil, internal(err)
	}
	if user == nil {
		return nil, notFound(MsgUserNotFound)
	}

	if req.GroupID != "" {
		group, err := store.GetGroup(ctx, req.GroupID)
		if err != nil {
			logger.Error("Failed to fetch group", zap.String("group_id", req.GroupID), zap.Error(err))
			return nil, internal(err)
		}
		if group == nil {
			return nil, notFound("Grupo no encontrado")
		}
	}

	// An admin promoted without a group keeps the groups they already lead
	change := db.RoleChange{
		UserID:          user.ID,
		VolunteerID:     req.VolunteerID,
		Role:            req.Role,
		GroupID:         req.GroupID,
		ResetLeadership: req.Role != db.RoleAdmin || req.GroupID != "",
	}

	if err := store.ReassignRole(ctx, change); err != nil {
		logger.Error("Failed to reassign role",
			zap.String("volunteer_id", req.VolunteerID),
			zap.String("role", string(req.Role)),
			zap.Error(err))
		return nil, internal(err)
	}

	logger.Info("Role reassigned",
		zap.String("by", caller.Email),
		zap.String("volunteer_id", req.VolunteerID),
		zap.String("role", string(req.Role)),
		zap.String("group_id", req.GroupID))

	return &change, nil
}
