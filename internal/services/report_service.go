package services

import (
	"context"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type ReportService struct {
	ReportRepo *repositories.ReportRepository
}

func (s *ReportService) CreateReport(ctx context.Context, report models.Report, reporterID int) (models.Report, error) {
	report.ReporterID = reporterID
	return s.ReportRepo.CreateReport(ctx, report)
}

func (s *ReportService) GetAllReports(ctx context.Context, onlyUnresolved bool) ([]models.Report, error) {
	return s.ReportRepo.GetAllReports(ctx, onlyUnresolved)
}

func (s *ReportService) GetReportsByListingID(ctx context.Context, listingID int) ([]models.Report, error) {
	return s.ReportRepo.GetReportsByListingID(ctx, listingID)
}

func (s *ReportService) ResolveReport(ctx context.Context, id int) error {
	return s.ReportRepo.ResolveReport(ctx, id)
}

func (s *ReportService) DeleteReport(ctx context.Context, id int) error {
	return s.ReportRepo.DeleteReport(ctx, id)
}
