package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"confsite/internal/domain/entity"
	"confsite/internal/domain/repository"
	"confsite/pkg/cryptox"
)

var ErrNotFound = errors.New("not found")

const userColumns = `login, firstname, lastname, email, email_hash, company, description,
	photo_url, role, links, legacy_id, token, token_expiration, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.Login, &u.Firstname, &u.Lastname, &u.Email, &u.EmailHash,
		&u.Company, &u.Description, &u.PhotoURL, &u.Role, &u.Links, &u.LegacyID,
		&u.Token, &u.TokenExpiration, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]entity.User, error) {
	defer rows.Close()
	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) FindOne(ctx context.Context, login string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login = $1`, login)
	return scanUser(row)
}

func (r *UserRepository) FindByLegacyID(ctx context.Context, id int64) (*entity.User, error) {
	// legacy_id is kept as text; ids from the prior system were opaque digits.
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE legacy_id = $1`,
		strconv.FormatInt(id, 10))
	return scanUser(row)
}

// FindByEmail matches the stored content hash since email ciphertexts carry
// random nonces and are not comparable.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email_hash = $1`,
		cryptox.EmailHash(email))
	return scanUser(row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY lastname, firstname`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *UserRepository) FindByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ANY($1) ORDER BY lastname, firstname`,
		roleStrings(roles))
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *UserRepository) FindOneByRoles(ctx context.Context, login string, roles ...entity.Role) (*entity.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE login = $1 AND role = ANY($2)`,
		login, roleStrings(roles))
	return scanUser(row)
}

// Save is an idempotent upsert keyed by login.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (login, firstname, lastname, email, email_hash, company,
			description, photo_url, role, links, legacy_id, token, token_expiration, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (login) DO UPDATE SET
			firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname,
			email = EXCLUDED.email,
			email_hash = EXCLUDED.email_hash,
			company = EXCLUDED.company,
			description = EXCLUDED.description,
			photo_url = EXCLUDED.photo_url,
			role = EXCLUDED.role,
			links = EXCLUDED.links,
			legacy_id = EXCLUDED.legacy_id,
			token = EXCLUDED.token,
			token_expiration = EXCLUDED.token_expiration,
			updated_at = EXCLUDED.updated_at
	`, u.Login, u.Firstname, u.Lastname, u.Email, u.EmailHash, u.Company,
		u.Description, u.PhotoURL, string(u.Role), u.Links, u.LegacyID,
		u.Token, u.TokenExpiration, u.UpdatedAt)
	return err
}

func roleStrings(roles []entity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

var _ repository.UserRepository = (*UserRepository)(nil)
