package repositories

import (
	"context"
	"database/sql"
	"errors"

	"turakBack/internal/models"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type ListingFavoriteRepository struct {
	DB *sql.DB
}

func (r *ListingFavoriteRepository) AddToFavorites(ctx context.Context, userID, listingID int) error {
	query := `
        INSERT INTO listing_favorites (user_id, listing_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, listing_id) DO NOTHING
    `
	_, err := r.DB.ExecContext(ctx, query, userID, listingID)
	return err
}

func (r *ListingFavoriteRepository) RemoveFromFavorites(ctx context.Context, userID, listingID int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM listing_favorites WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *ListingFavoriteRepository) IsFavorite(ctx context.Context, userID, listingID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM listing_favorites WHERE user_id = $1 AND listing_id = $2)`,
		userID, listingID,
	).Scan(&exists)
	return exists, err
}

func (r *ListingFavoriteRepository) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Listing, error) {
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listing_favorites f
        JOIN listings l ON l.id = f.listing_id
        WHERE f.user_id = $1
        ORDER BY f.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := scanListingRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		listings[i].Liked = true
	}
	return listings, nil
}
