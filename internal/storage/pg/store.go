// Package pg is the Postgres store on pgxpool.
package pg

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db   *pgxpool.Pool
	pool *Pool
}

func NewStore(pool *Pool) *Store {
	return &Store{db: pool.Conn(), pool: pool}
}

// Migrate applies the embedded schema. Idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) UpsertStatute(ctx context.Context, st *domain.Statute) (bool, error) {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}

	cmd := `
        INSERT INTO statutes (id, master_id, name, normalized_name, statute_type,
                              promulgation_date, enforcement_date, status, retired, checksum)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (master_id) DO UPDATE SET
            name = EXCLUDED.name,
            normalized_name = EXCLUDED.normalized_name,
            statute_type = EXCLUDED.statute_type,
            promulgation_date = EXCLUDED.promulgation_date,
            enforcement_date = EXCLUDED.enforcement_date,
            status = EXCLUDED.status,
            retired = EXCLUDED.retired,
            checksum = EXCLUDED.checksum,
            updated_at = now()
        RETURNING id, (xmax = 0) AS inserted;
    `
	var inserted bool
	err := s.db.QueryRow(ctx, cmd,
		st.ID, st.MasterID, st.Name, st.NormalizedName, st.StatuteType,
		st.PromulgationDate, st.EnforcementDate, st.Status, st.Retired, st.Checksum,
	).Scan(&st.ID, &inserted)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, storage.ErrDuplicateStatute
		}
		return false, fmt.Errorf("upsert statute %s: %w", st.MasterID, err)
	}
	return inserted, nil
}

func (s *Store) StatuteByMasterID(ctx context.Context, masterID string) (*domain.Statute, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, master_id, name, normalized_name, statute_type,
               promulgation_date, enforcement_date, status, retired, checksum,
               created_at, updated_at
        FROM statutes WHERE master_id = $1;`, masterID)
	return scanStatute(row)
}

func (s *Store) StatutesByNormalizedName(ctx context.Context, normalizedName string) ([]domain.Statute, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, master_id, name, normalized_name, statute_type,
               promulgation_date, enforcement_date, status, retired, checksum,
               created_at, updated_at
        FROM statutes
        WHERE normalized_name = $1
        ORDER BY enforcement_date ASC;`, normalizedName)
	if err != nil {
		return nil, fmt.Errorf("query statutes by name: %w", err)
	}
	defer rows.Close()

	var out []domain.Statute
	for rows.Next() {
		st, err := scanStatute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func (s *Store) UpsertArticle(ctx context.Context, a *domain.Article) (bool, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	cmd := `
        INSERT INTO articles (id, statute_id, article_no, normalized_no, title,
                              content, content_hash, effective_from, effective_until)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (statute_id, normalized_no) WHERE effective_until IS NULL
        DO UPDATE SET
            article_no = EXCLUDED.article_no,
            title = EXCLUDED.title,
            content = EXCLUDED.content,
            content_hash = EXCLUDED.content_hash,
            effective_from = EXCLUDED.effective_from,
            effective_until = EXCLUDED.effective_until,
            updated_at = now()
        RETURNING id, (xmax = 0) AS inserted;
    `
	var inserted bool
	err := s.db.QueryRow(ctx, cmd,
		a.ID, a.StatuteID, a.ArticleNo, a.NormalizedNo, a.Title,
		a.Content, a.ContentHash, a.EffectiveFrom, a.EffectiveUntil,
	).Scan(&a.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("upsert article %s: %w", a.NormalizedNo, err)
	}
	return inserted, nil
}

func (s *Store) CurrentArticle(ctx context.Context, statuteID uuid.UUID, normalizedNo string) (*domain.Article, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, statute_id, article_no, normalized_no, title, content,
               content_hash, effective_from, effective_until, created_at, updated_at
        FROM articles
        WHERE statute_id = $1 AND normalized_no = $2
          AND (effective_until IS NULL OR effective_until > now());`,
		statuteID, normalizedNo)
	return scanArticle(row)
}

func (s *Store) ArticlesByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.Article, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, statute_id, article_no, normalized_no, title, content,
               content_hash, effective_from, effective_until, created_at, updated_at
        FROM articles
        WHERE statute_id = $1
        ORDER BY normalized_no ASC;`, statuteID)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) AppendDiff(ctx context.Context, d *domain.DiffRecord) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	_, err := s.db.Exec(ctx, `
        INSERT INTO diff_records (id, statute_id, article_id, change_type,
                                  previous_content, current_content, summary,
                                  is_critical, effective_from, detected_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		d.ID, d.StatuteID, d.ArticleID, d.ChangeType,
		d.Previous, d.Current, d.Summary, d.IsCritical, d.EffectiveFrom, d.DetectedAt)
	if err != nil {
		return fmt.Errorf("append diff record: %w", err)
	}
	return nil
}

func (s *Store) DiffsByStatute(ctx context.Context, statuteID uuid.UUID, from, to time.Time) ([]domain.DiffRecord, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, statute_id, article_id, change_type, previous_content,
               current_content, summary, is_critical, effective_from, detected_at
        FROM diff_records
        WHERE statute_id = $1 AND effective_from >= $2 AND effective_from <= $3
        ORDER BY effective_from ASC;`, statuteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query diffs by statute: %w", err)
	}
	defer rows.Close()
	return collectDiffs(rows)
}

func (s *Store) DiffsDetectedBetween(ctx context.Context, from, to time.Time) ([]domain.DiffRecord, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, statute_id, article_id, change_type, previous_content,
               current_content, summary, is_critical, effective_from, detected_at
        FROM diff_records
        WHERE detected_at >= $1 AND detected_at <= $2
        ORDER BY detected_at ASC;`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query diffs by detection time: %w", err)
	}
	defer rows.Close()
	return collectDiffs(rows)
}

func (s *Store) ReplaceTerms(ctx context.Context, statuteID uuid.UUID, terms []domain.LegalTerm) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin terms tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM legal_terms WHERE statute_id = $1;`, statuteID); err != nil {
		return fmt.Errorf("clear terms: %w", err)
	}
	for _, t := range terms {
		_, err := tx.Exec(ctx, `
            INSERT INTO legal_terms (statute_id, term, normalized_term, definition, source_article_no, confidence)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (statute_id, normalized_term) DO UPDATE SET
                definition = EXCLUDED.definition,
                source_article_no = EXCLUDED.source_article_no,
                confidence = EXCLUDED.confidence;`,
			statuteID, t.Term, t.NormalizedTerm, t.Definition, t.SourceArticleNo, t.Confidence)
		if err != nil {
			return fmt.Errorf("insert term %q: %w", t.Term, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) TermsByStatute(ctx context.Context, statuteID uuid.UUID) ([]domain.LegalTerm, error) {
	rows, err := s.db.Query(ctx, `
        SELECT statute_id, term, normalized_term, definition, source_article_no, confidence
        FROM legal_terms WHERE statute_id = $1 ORDER BY term ASC;`, statuteID)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	var out []domain.LegalTerm
	for rows.Next() {
		var t domain.LegalTerm
		if err := rows.Scan(&t.StatuteID, &t.Term, &t.NormalizedTerm, &t.Definition, &t.SourceArticleNo, &t.Confidence); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SavePrecedent(ctx context.Context, p *domain.Precedent) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO precedents (normalized_case_no, case_no, court_name, seen_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (normalized_case_no) DO UPDATE SET seen_at = EXCLUDED.seen_at;`,
		p.NormalizedCaseNo, p.CaseNo, p.CourtName, p.SeenAt)
	if err != nil {
		return fmt.Errorf("save precedent: %w", err)
	}
	return nil
}

func (s *Store) PrecedentExists(ctx context.Context, normalizedCaseNo string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM precedents WHERE normalized_case_no = $1);`,
		normalizedCaseNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("precedent exists: %w", err)
	}
	return exists, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func scanStatute(row pgx.Row) (*domain.Statute, error) {
	var st domain.Statute
	err := row.Scan(&st.ID, &st.MasterID, &st.Name, &st.NormalizedName, &st.StatuteType,
		&st.PromulgationDate, &st.EnforcementDate, &st.Status, &st.Retired, &st.Checksum,
		&st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan statute: %w", err)
	}
	return &st, nil
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.StatuteID, &a.ArticleNo, &a.NormalizedNo, &a.Title,
		&a.Content, &a.ContentHash, &a.EffectiveFrom, &a.EffectiveUntil,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

func collectDiffs(rows pgx.Rows) ([]domain.DiffRecord, error) {
	var out []domain.DiffRecord
	for rows.Next() {
		var d domain.DiffRecord
		if err := rows.Scan(&d.ID, &d.StatuteID, &d.ArticleID, &d.ChangeType,
			&d.Previous, &d.Current, &d.Summary, &d.IsCritical,
			&d.EffectiveFrom, &d.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan diff record: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
