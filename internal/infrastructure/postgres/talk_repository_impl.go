package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"confsite/internal/domain/entity"
	"confsite/internal/domain/repository"
)

type TalkRepository struct {
	pool *pgxpool.Pool
}

func NewTalkRepository(pool *pgxpool.Pool) *TalkRepository {
	return &TalkRepository{pool: pool}
}

func (r *TalkRepository) FindBySpeakerID(ctx context.Context, logins []string) ([]entity.Talk, error) {
	if len(logins) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, summary, language, room, start_time, end_time, speaker_logins
		FROM talks
		WHERE speaker_logins && $1
		ORDER BY start_time
	`, logins)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Talk
	for rows.Next() {
		var t entity.Talk
		if err := rows.Scan(&t.ID, &t.Title, &t.Summary, &t.Language, &t.Room,
			&t.Start, &t.End, &t.SpeakerLogins); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repository.TalkRepository = (*TalkRepository)(nil)
