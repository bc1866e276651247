package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists for this listing")
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE listing_id = $1 AND user_id = $2)`,
		review.ListingID, review.UserID,
	).Scan(&exists)
	if err != nil {
		return models.Review{}, err
	}
	if exists {
		return models.Review{}, ErrReviewExists
	}

	query := `
        INSERT INTO reviews (listing_id, user_id, rating, text, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	review.CreatedAt = time.Now()
	err = r.DB.QueryRowContext(ctx, query,
		review.ListingID, review.UserID, review.Rating, review.Text, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Review{}, ErrReviewExists
		}
		return models.Review{}, err
	}

	if err := r.recalcAggregates(ctx, review.ListingID); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	var review models.Review
	query := `
        SELECT id, listing_id, user_id, rating, text, created_at, updated_at
        FROM reviews
        WHERE id = $1
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.ListingID, &review.UserID, &review.Rating, &review.Text,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Review{}, ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) GetReviewsByListingID(ctx context.Context, listingID, page, limit int) (models.ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := `
        SELECT r.id, r.listing_id, r.user_id, u.name, u.surname, u.avatar_path,
               r.rating, r.text, r.created_at, r.updated_at
        FROM reviews r
        JOIN users u ON u.id = r.user_id
        WHERE r.listing_id = $1
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.DB.QueryContext(ctx, query, listingID, limit, offset)
	if err != nil {
		return models.ReviewListResponse{}, err
	}
	defer rows.Close()

	var resp models.ReviewListResponse
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID, &review.ListingID, &review.UserID, &review.UserName, &review.UserSurname, &review.UserAvatar,
			&review.Rating, &review.Text, &review.CreatedAt, &review.UpdatedAt,
		); err != nil {
			return models.ReviewListResponse{}, err
		}
		resp.Reviews = append(resp.Reviews, review)
	}
	if err := rows.Err(); err != nil {
		return models.ReviewListResponse{}, err
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE listing_id = $1`,
		listingID,
	).Scan(&resp.AvgRating, &resp.Total)
	if err != nil {
		return models.ReviewListResponse{}, err
	}
	return resp, nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, review models.Review) (models.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE reviews SET rating = $1, text = $2, updated_at = NOW() WHERE id = $3`,
		review.Rating, review.Text, review.ID,
	)
	if err != nil {
		return models.Review{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Review{}, err
	}
	if affected == 0 {
		return models.Review{}, ErrReviewNotFound
	}

	updated, err := r.GetReviewByID(ctx, review.ID)
	if err != nil {
		return models.Review{}, err
	}
	if err := r.recalcAggregates(ctx, updated.ListingID); err != nil {
		return models.Review{}, err
	}
	return updated, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	review, err := r.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return err
	}
	return r.recalcAggregates(ctx, review.ListingID)
}

// HasAcceptedBooking gates review creation: only tenants whose booking was
// accepted may review the listing.
func (r *ReviewRepository) HasAcceptedBooking(ctx context.Context, listingID, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE listing_id = $1 AND tenant_id = $2 AND status = 'accepted')`,
		listingID, userID,
	).Scan(&exists)
	return exists, err
}

// recalcAggregates refreshes the denormalized rating columns on the listing
// and its landlord after any review change.
func (r *ReviewRepository) recalcAggregates(ctx context.Context, listingID int) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE listings
        SET avg_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE listing_id = $1), 0),
            reviews_count = (SELECT COUNT(*) FROM reviews WHERE listing_id = $1)
        WHERE id = $1
    `, listingID)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
        UPDATE users u
        SET review_rating = COALESCE(agg.avg_rating, 0),
            reviews_count = COALESCE(agg.cnt, 0)
        FROM (
            SELECT l.user_id, AVG(r.rating) AS avg_rating, COUNT(r.id) AS cnt
            FROM reviews r
            JOIN listings l ON l.id = r.listing_id
            WHERE l.user_id = (SELECT user_id FROM listings WHERE id = $1)
            GROUP BY l.user_id
        ) agg
        WHERE u.id = agg.user_id
    `, listingID)
	return err
}
