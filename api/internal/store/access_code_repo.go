package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrCodeNotFound = errors.New("access code does not exist")
	ErrCodeExpired  = errors.New("access code has expired")
)

type AccessCodeRepo struct{ DB *sql.DB }

func NewAccessCodeRepo(db *sql.DB) *AccessCodeRepo { return &AccessCodeRepo{DB: db} }

type AccessCodeRow struct {
	Code         string
	TutorName    string
	TeacherEmail string
	ExpiresAt    *time.Time // nil = never expires
	CreatedAt    time.Time
}

// Resolve looks up a code (case-insensitive) and checks expiry against now.
// Returns ErrCodeNotFound / ErrCodeExpired so callers can map them to 404/403.
func (r *AccessCodeRepo) Resolve(ctx context.Context, code string, now time.Time) (*AccessCodeRow, error) {
	const q = `
select code, tutor_name, coalesce(teacher_email,''), expires_at, created_at
from access_codes
where upper(code) = upper($1)`
	var (
		row       AccessCodeRow
		expiresAt sql.NullTime
	)
	if err := r.DB.QueryRowContext(ctx, q, code).Scan(
		&row.Code, &row.TutorName, &row.TeacherEmail, &expiresAt, &row.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		row.ExpiresAt = &t
	}
	if Expired(row.ExpiresAt, now) {
		return nil, ErrCodeExpired
	}
	return &row, nil
}

// Expired reports whether a code with the given end date is past it.
// A nil end date never expires.
func Expired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && expiresAt.Before(now)
}

// Upsert creates or renews an access code.
func (r *AccessCodeRepo) Upsert(ctx context.Context, row AccessCodeRow) error {
	const q = `
insert into access_codes(code, tutor_name, teacher_email, expires_at)
values ($1,$2,$3,$4)
on conflict (code)
do update set tutor_name=excluded.tutor_name,
              teacher_email=excluded.teacher_email,
              expires_at=excluded.expires_at`
	var expires any
	if row.ExpiresAt != nil {
		expires = *row.ExpiresAt
	}
	_, err := r.DB.ExecContext(ctx, q, row.Code, row.TutorName, row.TeacherEmail, expires)
	return err
}

func (r *AccessCodeRepo) Delete(ctx context.Context, code string) error {
	_, err := r.DB.ExecContext(ctx, `delete from access_codes where upper(code) = upper($1)`, code)
	return err
}
