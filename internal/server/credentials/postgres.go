package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens the database and brings the schema up to date
// with the embedded goose migrations.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	r := &PostgresRepository{db: db}

	if err := r.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, r.db, "."); err != nil {
		return err
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	query :=
		`SELECT id, email, password_hash, created_at, updated_at FROM credentials
		 WHERE email = $1
		 `

	cred := &Credential{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&cred.ID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Create(ctx context.Context, cred *Credential) (*Credential, error) {

	query :=
		`INSERT INTO credentials (id, email, password_hash, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5)
		 `

	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		cred.ID, cred.Email, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
