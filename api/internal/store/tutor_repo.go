package store

import (
	"context"
	"database/sql"
	"time"

	"ai-tutors/api/internal/tutor"
)

type TutorRepo struct{ DB *sql.DB }

func NewTutorRepo(db *sql.DB) *TutorRepo { return &TutorRepo{DB: db} }

// TutorRow is a stored tutor profile plus its listing metadata.
type TutorRow struct {
	tutor.Profile
	Availability string
	CreatorEmail string
	CreatedAt    time.Time
}

// Get loads a tutor profile by name.
func (r *TutorRepo) Get(ctx context.Context, name string) (*TutorRow, error) {
	const q = `
select name, coalesce(description,''), coalesce(introduction,''),
       coalesce(instructions,''), coalesce(guidelines,''), coalesce(knowledge,''),
       coalesce(availability,'Completely Open'), coalesce(creator_email,''), created_at
from tutors
where name = $1`
	var row TutorRow
	if err := r.DB.QueryRowContext(ctx, q, name).Scan(
		&row.Name, &row.Description, &row.Introduction,
		&row.Instructions, &row.Guidelines, &row.Knowledge,
		&row.Availability, &row.CreatorEmail, &row.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAvailable returns the tutors visible in the public catalog.
func (r *TutorRepo) ListAvailable(ctx context.Context) ([]TutorRow, error) {
	const q = `
select name, coalesce(description,''), coalesce(introduction,''),
       coalesce(instructions,''), coalesce(guidelines,''), coalesce(knowledge,''),
       coalesce(availability,'Completely Open'), coalesce(creator_email,''), created_at
from tutors
where availability in ('Completely Open', 'Open to Anyone with Access Code')
order by name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TutorRow
	for rows.Next() {
		var row TutorRow
		if err := rows.Scan(
			&row.Name, &row.Description, &row.Introduction,
			&row.Instructions, &row.Guidelines, &row.Knowledge,
			&row.Availability, &row.CreatorEmail, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Upsert creates or replaces a tutor profile (name is the key).
func (r *TutorRepo) Upsert(ctx context.Context, row TutorRow) error {
	const q = `
insert into tutors(name, description, introduction, instructions, guidelines, knowledge, availability, creator_email)
values ($1,$2,$3,$4,$5,$6,$7,$8)
on conflict (name)
do update set description=excluded.description,
              introduction=excluded.introduction,
              instructions=excluded.instructions,
              guidelines=excluded.guidelines,
              knowledge=excluded.knowledge,
              availability=excluded.availability,
              creator_email=excluded.creator_email`
	_, err := r.DB.ExecContext(ctx, q,
		row.Name, row.Description, row.Introduction,
		row.Instructions, row.Guidelines, row.Knowledge,
		row.Availability, row.CreatorEmail,
	)
	return err
}

func (r *TutorRepo) Delete(ctx context.Context, name string) error {
	_, err := r.DB.ExecContext(ctx, `delete from tutors where name = $1`, name)
	return err
}
