package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// TranscriptRepo is an insert-only audit log of finished moderated turns,
// kept for teacher review.
type TranscriptRepo struct{ DB *sql.DB }

func NewTranscriptRepo(db *sql.DB) *TranscriptRepo { return &TranscriptRepo{DB: db} }

type TurnRecord struct {
	ID            int64
	AccessCode    string
	TutorName     string
	StudentPrompt string
	FinalResponse string
	Attempts      int
	Approved      bool
	Feedback      []string
	CreatedAt     time.Time
}

func (r *TranscriptRepo) Insert(ctx context.Context, rec TurnRecord) error {
	js, _ := json.Marshal(rec.Feedback)
	const q = `
insert into chat_turns(access_code, tutor_name, student_prompt, final_response, attempts, approved, feedback_json)
values ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.DB.ExecContext(ctx, q,
		rec.AccessCode, rec.TutorName, rec.StudentPrompt, rec.FinalResponse,
		rec.Attempts, rec.Approved, js,
	)
	return err
}

// RecentByCode returns the newest turns for one access code, newest first.
func (r *TranscriptRepo) RecentByCode(ctx context.Context, accessCode string, limit int) ([]TurnRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
select id, access_code, tutor_name, student_prompt, final_response, attempts, approved, feedback_json, created_at
from chat_turns
where upper(access_code) = upper($1)
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, accessCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TurnRecord
	for rows.Next() {
		var (
			rec TurnRecord
			js  []byte
		)
		if err := rows.Scan(&rec.ID, &rec.AccessCode, &rec.TutorName, &rec.StudentPrompt,
			&rec.FinalResponse, &rec.Attempts, &rec.Approved, &js, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &rec.Feedback); err != nil {
			// broken audit payload is not worth failing the page for
			rec.Feedback = nil
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
