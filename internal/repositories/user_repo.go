package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (name, surname, phone, email, password, role, review_rating, reviews_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	user.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password, user.Role,
		user.ReviewRating, user.ReviewsCount, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `
        SELECT id, name, surname, phone, email, password, role, avatar_path, review_rating, reviews_count, fcm_token, banned, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.Role, &user.AvatarPath, &user.ReviewRating, &user.ReviewsCount,
		&user.FCMToken, &user.Banned, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `
        SELECT id, name, surname, phone, email, password, role, avatar_path, review_rating, reviews_count, fcm_token, banned, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.Role, &user.AvatarPath, &user.ReviewRating, &user.ReviewsCount,
		&user.FCMToken, &user.Banned, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, nil
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	query := `
        SELECT id, name, surname, phone, email, password, role, avatar_path, review_rating, reviews_count, fcm_token, banned, created_at, updated_at
        FROM users
        WHERE phone = $1
    `
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.Role, &user.AvatarPath, &user.ReviewRating, &user.ReviewsCount,
		&user.FCMToken, &user.Banned, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, nil
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users
        SET name = $1, surname = $2, phone = $3, email = $4, avatar_path = $5, updated_at = NOW()
        WHERE id = $6
    `
	res, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.AvatarPath, user.ID,
	)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := `
        SELECT id, name, surname, phone, email, role, avatar_path, review_rating, reviews_count, banned, created_at
        FROM users
        ORDER BY id
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Role,
			&user.AvatarPath, &user.ReviewRating, &user.ReviewsCount, &user.Banned, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetBanned(ctx context.Context, userID int, banned bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET banned = $1, updated_at = NOW() WHERE id = $2`, banned, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, newPassword string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, newPassword, userID)
	return err
}

func (r *UserRepository) SetFCMToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET fcm_token = $1 WHERE id = $2`, token, userID)
	return err
}

// Sessions hold the refresh tokens the JWT middleware falls back to when the
// access token has expired.

func (r *UserRepository) SetSession(ctx context.Context, session models.Session) error {
	query := `
        INSERT INTO sessions (user_id, role, refresh_token, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET role = EXCLUDED.role, refresh_token = EXCLUDED.refresh_token, expires_at = EXCLUDED.expires_at
    `
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `
        SELECT user_id, role, refresh_token, expires_at
        FROM sessions
        WHERE refresh_token = $1
    `
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// Password reset codes.

func (r *UserRepository) SetResetCode(ctx context.Context, code models.PasswordResetCode) error {
	query := `
        INSERT INTO password_reset_codes (user_id, code, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
    `
	_, err := r.DB.ExecContext(ctx, query, code.UserID, code.Code, code.ExpiresAt)
	return err
}

func (r *UserRepository) GetResetCode(ctx context.Context, userID int) (models.PasswordResetCode, error) {
	var code models.PasswordResetCode
	query := `SELECT user_id, code, expires_at FROM password_reset_codes WHERE user_id = $1`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&code.UserID, &code.Code, &code.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PasswordResetCode{}, sql.ErrNoRows
		}
		return models.PasswordResetCode{}, err
	}
	return code, nil
}

func (r *UserRepository) DeleteResetCode(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM password_reset_codes WHERE user_id = $1`, userID)
	return err
}
