package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"io.pairapps.ouryear/internal/config"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost,
			cfg.PostgresPort, cfg.PostgresDB, cfg.PostgresSSLMode)
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Set connection pool settings
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	poolConfig.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Reports table - one row per submission, addressed by share code
	reportsTable := `
		CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			share_code VARCHAR(16) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Movies table - watched-movie records with TMDB and AI enrichment
	moviesTable := `
		CREATE TABLE IF NOT EXISTS movies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			report_id UUID NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			title VARCHAR(500) NOT NULL,
			original_title VARCHAR(500) NOT NULL,
			watch_date VARCHAR(20),
			rating INTEGER CHECK (rating BETWEEN 1 AND 5),
			tmdb_id BIGINT,
			release_date VARCHAR(20),
			runtime INTEGER,
			genres TEXT[] NOT NULL DEFAULT '{}',
			poster_url TEXT,
			backdrop_url TEXT,
			logo_url TEXT,
			poster_colors TEXT[] NOT NULL DEFAULT '{}',
			backdrop_colors TEXT[] NOT NULL DEFAULT '{}',
			dominant_color VARCHAR(32),
			tags TEXT[] NOT NULL DEFAULT '{}',
			summary TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Concerts table - attended-concert records
	concertsTable := `
		CREATE TABLE IF NOT EXISTS concerts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			report_id UUID NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			artist VARCHAR(500) NOT NULL,
			concert_date VARCHAR(20),
			venue VARCHAR(500),
			poster_url TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			summary TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Travels table - trip records with uploaded photos and generated art
	travelsTable := `
		CREATE TABLE IF NOT EXISTS travels (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			report_id UUID NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			city VARCHAR(255) NOT NULL,
			country VARCHAR(255) NOT NULL,
			travel_date VARCHAR(20),
			photo_urls TEXT[] NOT NULL DEFAULT '{}',
			illustration_url TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			summary TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Create indexes for better performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_reports_share_code ON reports(share_code);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_report_id ON movies(report_id);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_position ON movies(report_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_concerts_report_id ON concerts(report_id);`,
		`CREATE INDEX IF NOT EXISTS idx_concerts_position ON concerts(report_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_travels_report_id ON travels(report_id);`,
		`CREATE INDEX IF NOT EXISTS idx_travels_position ON travels(report_id, position);`,
	}

	// Execute table creation statements
	tables := []string{reportsTable, moviesTable, concertsTable, travelsTable}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Execute index creation statements
	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
