package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	DB *sql.DB
}

func (r *ReportRepository) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	query := `
        INSERT INTO reports (reporter_id, listing_id, reported_user_id, reason, text, resolved, created_at)
        VALUES ($1, $2, $3, $4, $5, FALSE, $6)
        RETURNING id
    `
	report.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		report.ReporterID, report.ListingID, report.ReportedUserID, report.Reason, report.Text, report.CreatedAt,
	).Scan(&report.ID)
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (r *ReportRepository) GetAllReports(ctx context.Context, onlyUnresolved bool) ([]models.Report, error) {
	query := `
        SELECT id, reporter_id, listing_id, reported_user_id, reason, text, resolved, created_at
        FROM reports
        WHERE ($1 = FALSE OR resolved = FALSE)
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, onlyUnresolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(
			&rep.ID, &rep.ReporterID, &rep.ListingID, &rep.ReportedUserID,
			&rep.Reason, &rep.Text, &rep.Resolved, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) GetReportsByListingID(ctx context.Context, listingID int) ([]models.Report, error) {
	query := `
        SELECT id, reporter_id, listing_id, reported_user_id, reason, text, resolved, created_at
        FROM reports
        WHERE listing_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(
			&rep.ID, &rep.ReporterID, &rep.ListingID, &rep.ReportedUserID,
			&rep.Reason, &rep.Text, &rep.Resolved, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) ResolveReport(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE reports SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) DeleteReport(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}
	return nil
}
