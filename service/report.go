package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

type reportService struct {
	reportRepo domain.ReportRepository
	userRepo   domain.UserRepository
	geocoder   domain.Geocoder
	mailer     domain.Mailer
	sms        domain.SMSSender
}

func NewReportService(
	reportRepo domain.ReportRepository,
	userRepo domain.UserRepository,
	geocoder domain.Geocoder,
	mailer domain.Mailer,
	sms domain.SMSSender,
) domain.ReportUseCase {
	return &reportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		geocoder:   geocoder,
		mailer:     mailer,
		sms:        sms,
	}
}

// CreateReport files a new citizen report. The address is geocoded
// best-effort: a failed lookup logs a warning and the report is stored
// without coordinates.
func (s *reportService) CreateReport(ctx context.Context, input domain.CreateReportInput) (*domain.Report, error) {
	if input.Title == "" || input.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	report := &domain.Report{
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Address:       input.Address,
		PhotoURLs:     input.PhotoURLs,
		VideoURLs:     input.VideoURLs,
		Status:        domain.StatusPending,
		CreatedByUUID: input.CreatedBy,
	}
	if report.PhotoURLs == nil {
		report.PhotoURLs = []string{}
	}
	if report.VideoURLs == nil {
		report.VideoURLs = []string{}
	}

	if input.Address != "" {
		coords, err := s.geocoder.Geocode(ctx, input.Address)
		if err != nil {
			log.Warn().Err(err).Str("address", input.Address).Msg("geocoding failed")
		} else if coords != nil {
			report.Latitude = &coords.Latitude
			report.Longitude = &coords.Longitude
		}
	}

	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReportByUUID(ctx context.Context, uuid string) (*domain.Report, error) {
	return s.reportRepo.GetReportByUUID(ctx, uuid)
}

func (s *reportService) GetReportsByUser(ctx context.Context, userUUID string) ([]domain.Report, error) {
	return s.reportRepo.GetReportsByUser(ctx, userUUID)
}

func (s *reportService) GetAllReports(ctx context.Context) ([]domain.Report, error) {
	return s.reportRepo.GetAllReports(ctx, domain.ReportFilter{})
}

// UpdateReport lets the owning citizen edit a report while it is still
// pending triage.
func (s *reportService) UpdateReport(ctx context.Context, uuid, actorUUID string, input domain.UpdateReportInput) (*domain.Report, error) {
	report, err := s.reportRepo.GetReportByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if report.Status != domain.StatusPending {
		return nil, domain.ErrNotEditable
	}
	if report.CreatedByUUID != actorUUID {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Category != nil {
		report.Category = *input.Category
	}
	if input.Address != nil {
		report.Address = *input.Address
	}

	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateStatus moves a report through its lifecycle and records who acted.
// Resolution notifies the reporter; notification failures are logged, not
// surfaced, since the status change itself succeeded.
func (s *reportService) UpdateStatus(ctx context.Context, uuid, status, actorUUID string) (*domain.Report, error) {
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusResolved:
	default:
		return nil, domain.ErrInvalidInput
	}

	report, err := s.reportRepo.GetReportByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	report.Status = status
	switch status {
	case domain.StatusApproved:
		report.ApprovedByUUID = &actorUUID
	case domain.StatusResolved:
		now := time.Now()
		report.ResolvedByUUID = &actorUUID
		report.ResolvedAt = &now
	}

	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, err
	}

	if status == domain.StatusResolved {
		s.notifyResolved(ctx, report)
	}
	return report, nil
}

func (s *reportService) DeleteReport(ctx context.Context, uuid, actorUUID, actorRole string) error {
	report, err := s.reportRepo.GetReportByUUID(ctx, uuid)
	if err != nil {
		return err
	}

	isOwner := report.CreatedByUUID == actorUUID
	isAdmin := actorRole == domain.RoleAdmin || actorRole == domain.RoleSuperAdmin
	if !isOwner && !isAdmin {
		return domain.ErrForbidden
	}

	return s.reportRepo.DeleteReport(ctx, uuid)
}

func (s *reportService) notifyResolved(ctx context.Context, report *domain.Report) {
	reporter, err := s.userRepo.GetUserByUUID(ctx, report.CreatedByUUID)
	if err != nil {
		log.Warn().Err(err).Str("report", report.UUID).Msg("could not load reporter for resolution notice")
		return
	}

	body := fmt.Sprintf("Good news, %s: your report %q has been resolved. Thank you for helping improve your city.",
		reporter.Name, report.Title)
	if err := s.mailer.Send(reporter.Email, "Your report has been resolved", body); err != nil {
		log.Warn().Err(err).Str("email", reporter.Email).Msg("resolution email failed")
	}

	if reporter.Phone != nil && *reporter.Phone != "" {
		sms := fmt.Sprintf("UrbanFix: your report %q has been resolved.", report.Title)
		if err := s.sms.Send(ctx, *reporter.Phone, sms); err != nil {
			log.Warn().Err(err).Str("phone", *reporter.Phone).Msg("resolution sms failed")
		}
	}
}
