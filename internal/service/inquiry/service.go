package inquiry

import (
	"context"
	"strings"

	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/validation"
)

const DefaultType = "general"

type inquiryRepo interface {
	Create(ctx context.Context, in domain.Inquiry) (*domain.Inquiry, error)
}

type Service struct {
	repo inquiryRepo
}

func New(repo inquiryRepo) *Service {
	return &Service{repo: repo}
}

// SubmitInput is the contact form.
type SubmitInput struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=300"`
	Message string `json:"message" binding:"required,max=5000"`
	Type    string `json:"type" binding:"omitempty,oneof=general vendor customer partnership technical feedback"`
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type == "" {
		in.Type = DefaultType
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Inquiry{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Type:    in.Type,
	})
}
