package repositories

import (
	"database/sql"

	"icoffee-admin/internal/database"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *database.User) error {
	query := `
        INSERT INTO users (name, email, password_hash, role, sub_role, is_active)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	result, err := r.db.Exec(query, user.Name, user.Email, user.PasswordHash,
		user.Role, user.SubRole, user.IsActive)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*database.User, error) {
	query := `
        SELECT id, name, email, password_hash, role, sub_role,
               is_active, recovery_code, last_login, created_at, updated_at
        FROM users
        WHERE email = ? AND is_active = true
    `

	var user database.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.SubRole, &user.IsActive, &user.RecoveryCode,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID int64) (*database.User, error) {
	query := `
        SELECT id, name, email, password_hash, role, sub_role,
               is_active, recovery_code, last_login, created_at, updated_at
        FROM users
        WHERE id = ?
    `

	var user database.User
	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.SubRole, &user.IsActive, &user.RecoveryCode,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List retrieves users with pagination and optional role/subrole filters
func (r *UserRepository) List(limit, offset int, role, subRole string) ([]database.User, error) {
	query := `
        SELECT id, name, email, password_hash, role, sub_role,
               is_active, recovery_code, last_login, created_at, updated_at
        FROM users
        WHERE 1=1
    `
	args := []interface{}{}

	if role != "" {
		query += " AND role = ?"
		args = append(args, role)
	}

	if subRole != "" {
		query += " AND sub_role = ?"
		args = append(args, subRole)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []database.User
	for rows.Next() {
		var user database.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Role, &user.SubRole, &user.IsActive, &user.RecoveryCode,
			&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Count returns the total number of users matching the filters
func (r *UserRepository) Count(role, subRole string) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE 1=1`
	args := []interface{}{}

	if role != "" {
		query += " AND role = ?"
		args = append(args, role)
	}

	if subRole != "" {
		query += " AND sub_role = ?"
		args = append(args, subRole)
	}

	var count int64
	err := r.db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// Update modifies a user's profile fields
func (r *UserRepository) Update(user *database.User) error {
	query := `
        UPDATE users
        SET name = ?, email = ?, role = ?, sub_role = ?, is_active = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `
	_, err := r.db.Exec(query, user.Name, user.Email, user.Role,
		user.SubRole, user.IsActive, user.ID)
	return err
}

// Deactivate soft-deletes a user
func (r *UserRepository) Deactivate(userID int64) error {
	query := `
        UPDATE users
        SET is_active = false, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `
	_, err := r.db.Exec(query, userID)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `
        UPDATE users
        SET password_hash = ?, recovery_code = '', updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `
	_, err := r.db.Exec(query, passwordHash, userID)
	return err
}

// SetRecoveryCode stores a generated recovery code
func (r *UserRepository) SetRecoveryCode(userID int64, code string) error {
	query := `
        UPDATE users
        SET recovery_code = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `
	_, err := r.db.Exec(query, code, userID)
	return err
}

// UpdateLastLogin stamps the user's most recent login
func (r *UserRepository) UpdateLastLogin(userID int64) error {
	query := `
        UPDATE users
        SET last_login = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `
	_, err := r.db.Exec(query, userID)
	return err
}
