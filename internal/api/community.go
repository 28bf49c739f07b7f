// ABOUTME: Feedback, ambassador, and partner accessors
// ABOUTME: Partners are always sent as multipart so a logo can ride along

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/pagination"
)

type FeedbackService service

// FeedbackFilter narrows the feedback listing
type FeedbackFilter struct {
	pagination.Params
	FeedbackType string
}

func (s *FeedbackService) List(ctx context.Context, f FeedbackFilter) (Page[Feedback], error) {
	payload, err := s.c.get(ctx, "/admin/feedback", query(f.Params, "feedback_type", f.FeedbackType))
	if err != nil {
		return Page[Feedback]{}, err
	}
	return decodePage[Feedback](payload, "feedback")
}

// FeedbackUpdate records triage progress on a feedback entry
type FeedbackUpdate struct {
	Status string `json:"status" validate:"required"`
}

func (s *FeedbackService) Update(ctx context.Context, id ID, in FeedbackUpdate) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/feedback", id), nil, gateway.JSON(in))
	return err
}

// Ambassador application statuses
var AmbassadorStatuses = []string{"pending", "approved", "rejected"}

type AmbassadorsService service

// AmbassadorFilter narrows the ambassador listing. Status "all" is the same as empty.
type AmbassadorFilter struct {
	pagination.Params
	Status string
}

func (s *AmbassadorsService) List(ctx context.Context, f AmbassadorFilter) (Page[Ambassador], error) {
	status := f.Status
	if status == "all" {
		status = ""
	}
	payload, err := s.c.get(ctx, "/admin/ambassadors", query(f.Params, "status", status))
	if err != nil {
		return Page[Ambassador]{}, err
	}
	return decodePage[Ambassador](payload, "ambassadors")
}

// AmbassadorReview approves or rejects an application
type AmbassadorReview struct {
	Status     string `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

func (s *AmbassadorsService) UpdateStatus(ctx context.Context, id ID, in AmbassadorReview) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/ambassadors", id)+"/status", nil, gateway.JSON(in))
	return err
}

// PartnerInput creates or edits a partner. Without a new LogoFile, LogoURL is kept.
type PartnerInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	AboutPage    string `json:"about_page"`
	WebsiteURL   string `json:"website_url" validate:"omitempty,url"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	IsActive     bool   `json:"is_active"`
	LogoURL      string `json:"logo_url"`
	LogoFile     string `json:"-"`
}

func (in PartnerInput) body() gateway.Body {
	form := gateway.NewForm().
		Set("name", in.Name).
		SetIf("description", in.Description).
		SetIf("about_page", in.AboutPage).
		SetIf("website_url", in.WebsiteURL).
		SetIf("contact_email", in.ContactEmail).
		Set("is_active", strconv.FormatBool(in.IsActive))
	if in.LogoFile != "" {
		form.Attach("logo", in.LogoFile, true)
	} else if in.LogoURL != "" {
		form.Set("logo_url", in.LogoURL)
	}
	return form
}

// EditOf prefills an input from an existing partner so an edit keeps its logo
func EditOf(p Partner) PartnerInput {
	return PartnerInput{
		Name:         p.Name,
		Description:  p.Description,
		AboutPage:    p.AboutPage,
		WebsiteURL:   p.WebsiteURL,
		ContactEmail: p.ContactEmail,
		IsActive:     bool(p.IsActive),
		LogoURL:      p.LogoURL,
	}
}

type PartnersService service

func (s *PartnersService) List(ctx context.Context) ([]Partner, error) {
	payload, err := s.c.get(ctx, "/admin/partners", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Partner](payload, "partners")
}

func (s *PartnersService) Create(ctx context.Context, in PartnerInput) (Partner, error) {
	if err := check(in); err != nil {
		return Partner{}, err
	}
	payload, err := s.c.do(ctx, http.MethodPost, "/admin/partners", nil, in.body())
	if err != nil {
		return Partner{}, err
	}
	return decodeCreated[Partner](payload, "partner")
}

func (s *PartnersService) Update(ctx context.Context, id ID, in PartnerInput) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	if err := check(in); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodPut, itemPath("/admin/partners", id), nil, in.body())
	return err
}

func (s *PartnersService) Delete(ctx context.Context, id ID) error {
	if err := required("id", string(id)); err != nil {
		return err
	}
	_, err := s.c.do(ctx, http.MethodDelete, itemPath("/admin/partners", id), nil, nil)
	return err
}
