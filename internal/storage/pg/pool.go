package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig bounds the connection pool behind the statute store. MaxConns
// zero keeps the pgxpool default.
type PoolConfig struct {
	ConnStr  string
	MaxConns int32
}

// Pool wraps pgxpool with a startup ping so a bad DATABASE_URL fails at boot
// rather than on the first sync write.
type Pool struct {
	db *pgxpool.Pool
}

func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	db, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pool{db: db}, nil
}

func (p *Pool) Conn() *pgxpool.Pool {
	return p.db
}

func (p *Pool) Close() {
	p.db.Close()
}

// Ping checks out a connection, so liveness reflects pool acquisition rather
// than an idle socket.
func (p *Pool) Ping(ctx context.Context) error {
	c, err := p.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return c.Ping(ctx)
}
