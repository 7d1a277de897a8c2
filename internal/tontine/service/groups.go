package service

import (
	"context"
	"sort"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

// GroupParams carries creation and wholesale update of a savings circle.
type GroupParams struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	TargetAmount int64  `json:"target_amount"`
}

func (p GroupParams) validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "group name is required")
	}
	if p.TargetAmount < 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "target amount cannot be negative")
	}
	return nil
}

func (s *Service) CreateGroup(ctx context.Context, p GroupParams) (*models.Group, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	group := &models.Group{
		ID:           s.ids.GroupID(),
		Name:         p.Name,
		Description:  p.Description,
		TargetAmount: p.TargetAmount,
		CreatedAt:    s.now(),
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		st.Groups[group.ID] = group.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "group created", "group_id", group.ID)
	return group, nil
}

// ListGroups returns all groups ordered by name, then id.
func (s *Service) ListGroups(ctx context.Context) ([]*models.Group, error) {
	var out []*models.Group
	err := s.store.View(ctx, func(st *store.State) error {
		for _, g := range st.Groups {
			out = append(out, g.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateGroup replaces the group's descriptive fields wholesale. Membership
// is managed through AddMember and RemoveMember only.
func (s *Service) UpdateGroup(ctx context.Context, groupID domain.GroupID, p GroupParams) (*models.Group, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var group *models.Group
	err := s.store.Update(ctx, func(st *store.State) error {
		g, err := st.Group(groupID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		g.Name = p.Name
		g.Description = p.Description
		g.TargetAmount = p.TargetAmount
		group = g.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *Service) DeleteGroup(ctx context.Context, groupID domain.GroupID) error {
	err := s.store.Update(ctx, func(st *store.State) error {
		if _, err := st.Group(groupID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		delete(st.Groups, groupID)
		delete(st.Messages, groupID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "group deleted", "group_id", groupID)
	return nil
}

// AddMember appends the member to the group's ordered set. Duplicate
// membership is rejected, which keeps the derived member count honest.
func (s *Service) AddMember(ctx context.Context, groupID domain.GroupID, memberID domain.MemberID) (*models.Group, error) {
	var group *models.Group
	err := s.store.Update(ctx, func(st *store.State) error {
		g, err := st.Group(groupID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		if _, err := st.Member(memberID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
		}
		if g.Contains(memberID) {
			return dErrors.New(dErrors.CodeDuplicateMembership, "member already belongs to this group")
		}
		g.MemberIDs = append(g.MemberIDs, memberID)
		group = g.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *Service) RemoveMember(ctx context.Context, groupID domain.GroupID, memberID domain.MemberID) (*models.Group, error) {
	var group *models.Group
	err := s.store.Update(ctx, func(st *store.State) error {
		g, err := st.Group(groupID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		for i, id := range g.MemberIDs {
			if id == memberID {
				g.MemberIDs = append(g.MemberIDs[:i], g.MemberIDs[i+1:]...)
				group = g.Clone()
				return nil
			}
		}
		return dErrors.New(dErrors.CodeNotFound, "member is not in this group")
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// PostMessage appends to the group's message log. The log is append-only and
// ordered by posting time.
func (s *Service) PostMessage(ctx context.Context, groupID domain.GroupID, author, body string) (*models.GroupMessage, error) {
	if author == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "message author is required")
	}
	if body == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "message body is required")
	}

	msg := &models.GroupMessage{
		ID:       s.ids.MessageID(),
		GroupID:  groupID,
		Author:   author,
		Body:     body,
		PostedAt: s.now(),
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		if _, err := st.Group(groupID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		st.Messages[groupID] = append(st.Messages[groupID], msg.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GroupMessages returns the group's log in posting order.
func (s *Service) GroupMessages(ctx context.Context, groupID domain.GroupID) ([]*models.GroupMessage, error) {
	var out []*models.GroupMessage
	err := s.store.View(ctx, func(st *store.State) error {
		if _, err := st.Group(groupID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "group not found")
		}
		out = cloneAll(st.Messages[groupID])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
