package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

type adminService struct {
	reportRepo    domain.ReportRepository
	userRepo      domain.UserRepository
	authorityRepo domain.AuthorityRepository
	ai            domain.ReportAI
	mailer        domain.Mailer
}

func NewAdminService(
	reportRepo domain.ReportRepository,
	userRepo domain.UserRepository,
	authorityRepo domain.AuthorityRepository,
	ai domain.ReportAI,
	mailer domain.Mailer,
) domain.AdminUseCase {
	return &adminService{
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		authorityRepo: authorityRepo,
		ai:            ai,
		mailer:        mailer,
	}
}

func (s *adminService) GetReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	return s.reportRepo.GetAllReports(ctx, filter)
}

// ApproveReport runs the triage chain: approve, AI-classify the
// description, look up the authority mapped to the category, draft and
// send the notification email, then persist. Classification and drafting
// fall back to safe defaults; a failed send fails the approval so the
// admin knows the authority was never notified.
func (s *adminService) ApproveReport(ctx context.Context, reportUUID, adminUUID string) (*domain.Report, error) {
	report, err := s.reportRepo.GetReportByUUID(ctx, reportUUID)
	if err != nil {
		return nil, err
	}

	report.Status = domain.StatusApproved
	report.ApprovedByUUID = &adminUUID

	category, err := s.ai.ClassifyReport(ctx, report.Description)
	if err != nil {
		log.Warn().Err(err).Str("report", report.UUID).Msg("ai classification failed")
		category = "Other"
	}
	report.AIClassification = category
	if category != "" {
		report.Category = category
	}

	mapping, err := s.authorityRepo.GetMappingByCategory(ctx, category)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if mapping != nil {
		body, draftErr := s.ai.DraftAuthorityEmail(ctx, report)
		if draftErr != nil || body == "" {
			log.Warn().Err(draftErr).Str("report", report.UUID).Msg("ai email drafting failed")
			body = fmt.Sprintf("Please take necessary action regarding the reported issue: %s", report.Title)
		}

		subject := fmt.Sprintf("New %s Report", category)
		if err := s.mailer.Send(mapping.AuthorityEmail, subject, body); err != nil {
			log.Error().Err(err).Str("authority", mapping.AuthorityEmail).Msg("authority notification failed")
			return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
		}
	}

	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, err
	}

	log.Info().Str("report", report.UUID).Str("category", category).Msg("report approved")
	return report, nil
}

func (s *adminService) RejectReport(ctx context.Context, reportUUID, adminUUID string) (*domain.Report, error) {
	report, err := s.reportRepo.GetReportByUUID(ctx, reportUUID)
	if err != nil {
		return nil, err
	}

	report.Status = domain.StatusRejected
	report.ApprovedByUUID = &adminUUID

	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *adminService) CreateMapping(ctx context.Context, category, authorityEmail string) (*domain.AuthorityMapping, error) {
	category = strings.TrimSpace(category)
	authorityEmail = strings.TrimSpace(authorityEmail)
	if category == "" || authorityEmail == "" {
		return nil, domain.ErrInvalidInput
	}

	mapping := &domain.AuthorityMapping{Category: category, AuthorityEmail: authorityEmail}
	if err := s.authorityRepo.CreateMapping(ctx, mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *adminService) GetMappings(ctx context.Context) ([]domain.AuthorityMapping, error) {
	return s.authorityRepo.GetAllMappings(ctx)
}

func (s *adminService) DeleteMapping(ctx context.Context, id uint) error {
	return s.authorityRepo.DeleteMapping(ctx, id)
}

func (s *adminService) GetUsers(ctx context.Context, role string) ([]domain.User, error) {
	return s.userRepo.GetAllUsers(ctx, role)
}
