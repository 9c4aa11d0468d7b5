package lib

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// DBEnv names the environment variable holding the default listing store
// connection string.
const DBEnv = "SMASM_DB"

const listingSchemaSQL = `
CREATE TABLE IF NOT EXISTS smasm_listings (
	id BIGSERIAL PRIMARY KEY,
	filename TEXT NOT NULL,
	lexed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS smasm_tokens (
	listing_id BIGINT NOT NULL REFERENCES smasm_listings (id) ON DELETE CASCADE,
	seq INT NOT NULL,
	line INT NOT NULL,
	col INT NOT NULL,
	type TEXT NOT NULL,
	text TEXT,
	int_value BIGINT,
	source TEXT NOT NULL,
	error_kind TEXT,
	PRIMARY KEY (listing_id, seq)
)`

var tokenColumns = []string{
	"listing_id", "seq", "line", "col", "type", "text", "int_value", "source", "error_kind",
}

// ListingStore keeps token listings in PostgreSQL so tooling can query them
// after the fact.
type ListingStore struct {
	db *sql.DB
}

func OpenListingStore(ctx context.Context, connectionString string) (*ListingStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to listing store: %w", err)
	}

	s := &ListingStore{db: db}
	if err := s.requireTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *ListingStore) requireTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, listingSchemaSQL); err != nil {
		return fmt.Errorf("creating listing tables: %w", err)
	}
	return nil
}

// Save stores one listing and its tokens in a single transaction and returns
// the listing id.
func (s *ListingStore) Save(ctx context.Context, filename string, tokens []Token) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		"INSERT INTO smasm_listings (filename) VALUES ($1) RETURNING id", filename).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting listing: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("smasm_tokens", tokenColumns...))
	if err != nil {
		return 0, err
	}
	for i, tok := range tokens {
		if _, err = stmt.ExecContext(ctx, tokenRow(id, i, tok)...); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copying token %d: %w", i, err)
		}
	}
	// an empty exec flushes the COPY
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("copying tokens: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// TokenCount returns how many tokens were saved for a listing.
func (s *ListingStore) TokenCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM smasm_tokens WHERE listing_id = $1", id).Scan(&n)
	return n, err
}

func (s *ListingStore) Close() error {
	return s.db.Close()
}

func tokenRow(listingID int64, seq int, tok Token) []interface{} {
	var text sql.NullString
	var value sql.NullInt64
	var kind sql.NullString

	switch tok.Payload.Kind() {
	case PayloadText:
		text = sql.NullString{String: tok.Text(), Valid: true}
	case PayloadInt:
		value = sql.NullInt64{Int64: tok.Int(), Valid: true}
	}
	if tok.Type == Error {
		kind = sql.NullString{String: tok.ErrKind.String(), Valid: true}
	}

	return []interface{}{
		listingID,
		seq,
		int64(tok.Pos.Line),
		int64(tok.Pos.Column),
		tok.Type.String(),
		text,
		value,
		tok.Source,
		kind,
	}
}
