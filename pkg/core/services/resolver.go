package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// ResolveCaller turns an authenticated email into a Caller.
// Returns nil if no user exists for the email.
func ResolveCaller(ctx context.Context, users db.UserStore, email string) (*model.Caller, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}

	user, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return &model.Caller{
		UserID:      user.ID,
		VolunteerID: user.VolunteerID,
		Email:       user.Email,
		Role:        user.Role,
	}, nil
}

// GroupLedBy returns the group the volunteer leads, or nil if none.
// A volunteer should lead at most one group; if several are found the first wins.
func GroupLedBy(ctx context.Context, groups db.GroupStore, logger *zap.Logger, volunteerID string) (*db.Group, error) {
	if volunteerID == "" {
		return nil, nil
	}

	led, err := groups.GetLedGroups(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch led groups: %w", err)
	}
	if len(led) == 0 {
		return nil, nil
	}
	if len(led) > 1 {
		logger.Warn("Volunteer leads more than one group, using first",
			zap.String("volunteer_id", volunteerID),
			zap.Int("group_count", len(led)))
	}

	g := led[0]
	return &g, nil
}

// GroupsForWeekday returns all non-deleted groups scheduled on day
func GroupsForWeekday(ctx context.Context, groups db.GroupStore, day db.DayOfWeek) ([]db.Group, error) {
	result, err := groups.GetGroupsByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups for %s: %w", day, err)
	}
	return result, nil
}

// ClassifyCaller computes the caller kind once for the eligibility engine.
// Returns nil for a non-admin caller who leads no group.
func ClassifyCaller(ctx context.Context, groups db.GroupStore, logger *zap.Logger, caller model.Caller) (model.CallerKind, error) {
	if caller.IsAdmin() {
		var ids []string
		if caller.VolunteerID != "" {
			led, err := groups.GetLedGroups(ctx, caller.VolunteerID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch led groups: %w", err)
			}
			for _, g := range led {
				ids = append(ids, g.ID)
			}
		}
		return model.AdminCaller{LedGroupIDs: ids}, nil
	}

	group, err := GroupLedBy(ctx, groups, logger, caller.VolunteerID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	return model.GroupLeaderCaller{Group: *group}, nil
}
