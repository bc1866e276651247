package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"turakBack/internal/models"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	query := `
    INSERT INTO listings (user_id, title, address, city_id, price, deposit, photos, amenities, rules, description, total_slots, available_slots, avg_rating, reviews_count, status, latitude, longitude, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    RETURNING id
    `

	photosJSON, err := json.Marshal(listing.Photos)
	if err != nil {
		return models.Listing{}, err
	}
	amenitiesJSON, err := json.Marshal(listing.Amenities)
	if err != nil {
		return models.Listing{}, err
	}
	rulesJSON, err := json.Marshal(listing.Rules)
	if err != nil {
		return models.Listing{}, err
	}

	listing.CreatedAt = time.Now()
	err = r.DB.QueryRowContext(ctx, query,
		listing.UserID,
		listing.Title,
		listing.Address,
		listing.CityID,
		listing.Price,
		listing.Deposit,
		string(photosJSON),
		string(amenitiesJSON),
		string(rulesJSON),
		listing.Description,
		listing.TotalSlots,
		listing.AvailableSlots,
		listing.AvgRating,
		listing.ReviewsCount,
		listing.Status,
		listing.Latitude,
		listing.Longitude,
		listing.CreatedAt,
	).Scan(&listing.ID)
	if err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id int, viewerID int) (models.Listing, error) {
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               u.id, u.name, u.surname, u.phone, u.review_rating, u.reviews_count, u.avatar_path,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               CASE WHEN f.id IS NOT NULL THEN TRUE ELSE FALSE END AS liked,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        JOIN users u ON l.user_id = u.id
        LEFT JOIN listing_favorites f ON f.listing_id = l.id AND f.user_id = $1
        WHERE l.id = $2
    `

	var s models.Listing
	var photosJSON, amenitiesJSON, rulesJSON []byte

	err := r.DB.QueryRowContext(ctx, query, viewerID, id).Scan(
		&s.ID, &s.Title, &s.Address, &s.CityID, &s.Price, &s.Deposit, &s.UserID,
		&s.User.ID, &s.User.Name, &s.User.Surname, &s.User.Phone, &s.User.ReviewRating, &s.User.ReviewsCount, &s.User.AvatarPath,
		&photosJSON, &amenitiesJSON, &rulesJSON, &s.Description,
		&s.TotalSlots, &s.AvailableSlots, &s.AvgRating, &s.ReviewsCount,
		&s.Liked,
		&s.Status, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Listing{}, ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}

	if err := decodeListingJSON(&s, photosJSON, amenitiesJSON, rulesJSON); err != nil {
		return models.Listing{}, err
	}
	return s, nil
}

func decodeListingJSON(s *models.Listing, photosJSON, amenitiesJSON, rulesJSON []byte) error {
	if len(photosJSON) > 0 {
		if err := json.Unmarshal(photosJSON, &s.Photos); err != nil {
			return fmt.Errorf("failed to decode photos json: %w", err)
		}
	}
	if len(amenitiesJSON) > 0 {
		if err := json.Unmarshal(amenitiesJSON, &s.Amenities); err != nil {
			return fmt.Errorf("failed to decode amenities json: %w", err)
		}
	}
	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &s.Rules); err != nil {
			return fmt.Errorf("failed to decode rules json: %w", err)
		}
	}
	return nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	query := `
        UPDATE listings
        SET title = $1, address = $2, city_id = $3, price = $4, deposit = $5,
            photos = $6, amenities = $7, rules = $8, description = $9,
            total_slots = $10,
            available_slots = GREATEST(0, LEAST(available_slots + ($10 - total_slots), $10)),
            latitude = $11, longitude = $12, status = $13, updated_at = NOW()
        WHERE id = $14
    `

	photosJSON, err := json.Marshal(listing.Photos)
	if err != nil {
		return models.Listing{}, err
	}
	amenitiesJSON, err := json.Marshal(listing.Amenities)
	if err != nil {
		return models.Listing{}, err
	}
	rulesJSON, err := json.Marshal(listing.Rules)
	if err != nil {
		return models.Listing{}, err
	}

	res, err := r.DB.ExecContext(ctx, query,
		listing.Title, listing.Address, listing.CityID, listing.Price, listing.Deposit,
		string(photosJSON), string(amenitiesJSON), string(rulesJSON), listing.Description,
		listing.TotalSlots,
		listing.Latitude, listing.Longitude, listing.Status, listing.ID,
	)
	if err != nil {
		return models.Listing{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Listing{}, err
	}
	if affected == 0 {
		return models.Listing{}, ErrListingNotFound
	}
	return r.GetListingByID(ctx, listing.ID, 0)
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) GetListingsByUserID(ctx context.Context, userID int) ([]models.Listing, error) {
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        WHERE l.user_id = $1
        ORDER BY l.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListingRows(rows)
}

func scanListingRows(rows *sql.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		var s models.Listing
		var photosJSON, amenitiesJSON, rulesJSON []byte
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Address, &s.CityID, &s.Price, &s.Deposit, &s.UserID,
			&photosJSON, &amenitiesJSON, &rulesJSON, &s.Description,
			&s.TotalSlots, &s.AvailableSlots, &s.AvgRating, &s.ReviewsCount,
			&s.Status, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeListingJSON(&s, photosJSON, amenitiesJSON, rulesJSON); err != nil {
			return nil, err
		}
		listings = append(listings, s)
	}
	return listings, rows.Err()
}

// GetFilteredListings runs the search with dynamic conditions, offset
// pagination and price aggregates over the same filtered set.
func (r *ListingRepository) GetFilteredListings(ctx context.Context, filter models.ListingFilterRequest, viewerID int) (models.ListingListResponse, error) {
	conds, args := buildListingConditions(filter, 2)
	where := strings.Join(conds, " AND ")

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               u.id, u.name, u.surname, u.phone, u.review_rating, u.reviews_count, u.avatar_path,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               CASE WHEN f.id IS NOT NULL THEN TRUE ELSE FALSE END AS liked,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        JOIN users u ON l.user_id = u.id
        LEFT JOIN listing_favorites f ON f.listing_id = l.id AND f.user_id = $1
        WHERE %s
        ORDER BY %s
        LIMIT $%d OFFSET $%d
    `, where, listingOrderBy(filter.Sorting), len(args)+2, len(args)+3)

	queryArgs := append([]interface{}{viewerID}, args...)
	queryArgs = append(queryArgs, filter.Limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return models.ListingListResponse{}, err
	}
	defer rows.Close()

	var resp models.ListingListResponse
	for rows.Next() {
		var s models.Listing
		var photosJSON, amenitiesJSON, rulesJSON []byte
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Address, &s.CityID, &s.Price, &s.Deposit, &s.UserID,
			&s.User.ID, &s.User.Name, &s.User.Surname, &s.User.Phone, &s.User.ReviewRating, &s.User.ReviewsCount, &s.User.AvatarPath,
			&photosJSON, &amenitiesJSON, &rulesJSON, &s.Description,
			&s.TotalSlots, &s.AvailableSlots, &s.AvgRating, &s.ReviewsCount,
			&s.Liked,
			&s.Status, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return models.ListingListResponse{}, err
		}
		if err := decodeListingJSON(&s, photosJSON, amenitiesJSON, rulesJSON); err != nil {
			return models.ListingListResponse{}, err
		}
		resp.Listings = append(resp.Listings, s)
	}
	if err := rows.Err(); err != nil {
		return models.ListingListResponse{}, err
	}

	aggConds, aggArgs := buildListingConditions(filter, 1)
	aggQuery := fmt.Sprintf(`
        SELECT COUNT(*), COALESCE(MIN(l.price), 0), COALESCE(MAX(l.price), 0)
        FROM listings l
        WHERE %s
    `, strings.Join(aggConds, " AND "))
	if err := r.DB.QueryRowContext(ctx, aggQuery, aggArgs...).Scan(&resp.Total, &resp.MinPrice, &resp.MaxPrice); err != nil {
		return models.ListingListResponse{}, err
	}
	return resp, nil
}

// GetFeed returns the public feed page keyed on id: rows with id < cursor,
// newest first. Cursor 0 means the first page.
func (r *ListingRepository) GetFeed(ctx context.Context, cursor, limit int) (models.FeedPage, error) {
	if limit < 1 {
		limit = 20
	}
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        WHERE l.status = 'active' AND ($1 = 0 OR l.id < $1)
        ORDER BY l.id DESC
        LIMIT $2
    `
	rows, err := r.DB.QueryContext(ctx, query, cursor, limit)
	if err != nil {
		return models.FeedPage{}, err
	}
	defer rows.Close()

	listings, err := scanListingRows(rows)
	if err != nil {
		return models.FeedPage{}, err
	}

	page := models.FeedPage{Listings: listings}
	if len(listings) == limit {
		page.NextCursor = listings[len(listings)-1].ID
	}
	return page, nil
}

func (r *ListingRepository) GetListingsByStatus(ctx context.Context, status string) ([]models.Listing, error) {
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        WHERE l.status = $1
        ORDER BY l.created_at ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListingRows(rows)
}

// GetActivatedSince feeds the saved-search matcher: active listings whose
// last status change happened after the given instant.
func (r *ListingRepository) GetActivatedSince(ctx context.Context, since time.Time) ([]models.Listing, error) {
	query := `
        SELECT l.id, l.title, l.address, l.city_id, l.price, l.deposit, l.user_id,
               l.photos, l.amenities, l.rules, l.description,
               l.total_slots, l.available_slots, l.avg_rating, l.reviews_count,
               l.status, l.latitude, l.longitude, l.created_at, l.updated_at
        FROM listings l
        WHERE l.status = 'active' AND COALESCE(l.updated_at, l.created_at) > $1
        ORDER BY l.id ASC
    `
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListingRows(rows)
}
