package repositories

import (
	"database/sql"
	"time"

	"icoffee-admin/internal/database"
)

type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// InsertAuditLog inserts a new audit log entry
func (r *AuditLogRepository) InsertAuditLog(log *database.AuditLog) error {
	query := `
        INSERT INTO audit_logs (action, actor_id, resource, details, ip_address)
        VALUES (?, ?, ?, ?, ?)
    `
	result, err := r.db.Exec(query, log.Action, log.ActorID, log.Resource, log.Details, log.IPAddress)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	log.ID = id
	return nil
}

// GetAuditLogs retrieves audit logs with pagination and filtering
func (r *AuditLogRepository) GetAuditLogs(limit, offset int, action, actorID string, startTime, endTime *time.Time) ([]database.AuditLog, error) {
	query := `
        SELECT id, action, actor_id, resource, details, ip_address, created_at
        FROM audit_logs
        WHERE 1=1
    `
	args := []interface{}{}

	if action != "" {
		query += " AND action = ?"
		args = append(args, action)
	}

	if actorID != "" {
		query += " AND actor_id = ?"
		args = append(args, actorID)
	}

	if startTime != nil {
		query += " AND created_at >= ?"
		args = append(args, startTime)
	}

	if endTime != nil {
		query += " AND created_at <= ?"
		args = append(args, endTime)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []database.AuditLog
	for rows.Next() {
		var log database.AuditLog
		err := rows.Scan(&log.ID, &log.Action, &log.ActorID, &log.Resource,
			&log.Details, &log.IPAddress, &log.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
