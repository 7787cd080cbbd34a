package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/repository"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

// MembersHandler exposes the /members endpoints.
type MembersHandler struct {
	members repository.MemberRepository
}

// NewMembersHandler constructs handler.
func NewMembersHandler(members repository.MemberRepository) *MembersHandler {
	return &MembersHandler{members: members}
}

func (h *MembersHandler) current(c *fiber.Ctx) (*domain.Member, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	member, err := h.members.GetByUserID(c.UserContext(), p.User.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("member")
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// GetCurrent handles GET /members/current.
func (h *MembersHandler) GetCurrent(c *fiber.Ctx) error {
	member, err := h.current(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, member)
}

// UpdateSettings handles PATCH /members/settings.
func (h *MembersHandler) UpdateSettings(c *fiber.Ctx) error {
	member, err := h.current(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMemberSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if req.EmailNotifications != nil {
		member.Settings.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		member.Settings.PushNotifications = *req.PushNotifications
	}
	if req.ShowMemberships != nil {
		member.Settings.ShowMemberships = *req.ShowMemberships
	}
	if req.Language != nil {
		member.Settings.Language = *req.Language
	}

	if err := h.members.Update(c.UserContext(), member); err != nil {
		return apperrors.MapError(err)
	}
	return respond(c, http.StatusOK, member)
}
