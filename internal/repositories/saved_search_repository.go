package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrSavedSearchNotFound = errors.New("saved search not found")

type SavedSearchRepository struct {
	DB *sql.DB
}

func (r *SavedSearchRepository) CreateSavedSearch(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	filterJSON, err := json.Marshal(search.Filter)
	if err != nil {
		return models.SavedSearch{}, err
	}

	query := `
        INSERT INTO saved_searches (user_id, name, filter, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	search.CreatedAt = time.Now()
	err = r.DB.QueryRowContext(ctx, query,
		search.UserID, search.Name, string(filterJSON), search.CreatedAt,
	).Scan(&search.ID)
	if err != nil {
		return models.SavedSearch{}, err
	}
	return search, nil
}

func (r *SavedSearchRepository) GetSavedSearchByID(ctx context.Context, id int) (models.SavedSearch, error) {
	var search models.SavedSearch
	var filterJSON []byte
	query := `SELECT id, user_id, name, filter, created_at FROM saved_searches WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&search.ID, &search.UserID, &search.Name, &filterJSON, &search.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.SavedSearch{}, ErrSavedSearchNotFound
	}
	if err != nil {
		return models.SavedSearch{}, err
	}
	if err := json.Unmarshal(filterJSON, &search.Filter); err != nil {
		return models.SavedSearch{}, err
	}
	return search, nil
}

func (r *SavedSearchRepository) GetSavedSearchesByUser(ctx context.Context, userID int) ([]models.SavedSearch, error) {
	query := `SELECT id, user_id, name, filter, created_at FROM saved_searches WHERE user_id = $1 ORDER BY created_at DESC`
	return r.querySearches(ctx, query, userID)
}

// GetAllSavedSearches returns every stored search for the matcher worker.
func (r *SavedSearchRepository) GetAllSavedSearches(ctx context.Context) ([]models.SavedSearch, error) {
	query := `SELECT id, user_id, name, filter, created_at FROM saved_searches ORDER BY id ASC`
	return r.querySearches(ctx, query)
}

func (r *SavedSearchRepository) querySearches(ctx context.Context, query string, args ...interface{}) ([]models.SavedSearch, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []models.SavedSearch
	for rows.Next() {
		var search models.SavedSearch
		var filterJSON []byte
		if err := rows.Scan(&search.ID, &search.UserID, &search.Name, &filterJSON, &search.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(filterJSON, &search.Filter); err != nil {
			return nil, err
		}
		searches = append(searches, search)
	}
	return searches, rows.Err()
}

func (r *SavedSearchRepository) UpdateSavedSearch(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	filterJSON, err := json.Marshal(search.Filter)
	if err != nil {
		return models.SavedSearch{}, err
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE saved_searches SET name = $1, filter = $2 WHERE id = $3`,
		search.Name, string(filterJSON), search.ID,
	)
	if err != nil {
		return models.SavedSearch{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.SavedSearch{}, err
	}
	if affected == 0 {
		return models.SavedSearch{}, ErrSavedSearchNotFound
	}
	return r.GetSavedSearchByID(ctx, search.ID)
}

func (r *SavedSearchRepository) DeleteSavedSearch(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSavedSearchNotFound
	}
	return nil
}
