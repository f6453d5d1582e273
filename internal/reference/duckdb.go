package reference

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDBLoader provides access to a curated variant table stored in a
// DuckDB database, for tables too large to ship as TSV.
type DuckDBLoader struct {
	db   *sql.DB
	path string
}

// NewDuckDBLoader opens a DuckDB-backed reference table.
// The path can be a local file path or an S3 URL (s3://bucket/path.duckdb).
func NewDuckDBLoader(path string) (*DuckDBLoader, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	// S3 URLs need the httpfs extension.
	if strings.HasPrefix(path, "s3://") {
		if _, err := db.Exec("INSTALL httpfs; LOAD httpfs;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("load httpfs extension: %w", err)
		}
	}

	return &DuckDBLoader{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (l *DuckDBLoader) Close() error {
	return l.db.Close()
}

// LoadAll loads every reference entry, ordered by gene and position so
// downstream matching is deterministic.
func (l *DuckDBLoader) LoadAll() ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT rsid, gene, star_allele, chrom, pos, ref, alt,
		       function, evidence, significance, drugs
		FROM variants
		ORDER BY gene, pos
	`)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadGene loads the reference entries for a single gene.
func (l *DuckDBLoader) LoadGene(gene string) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT rsid, gene, star_allele, chrom, pos, ref, alt,
		       function, evidence, significance, drugs
		FROM variants
		WHERE gene = ?
		ORDER BY pos
	`, gene)
	if err != nil {
		return nil, fmt.Errorf("query variants for %s: %w", gene, err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var e Entry
	var function, evidence, drugs string

	err := rows.Scan(&e.RSID, &e.Gene, &e.StarAllele, &e.Chrom, &e.Pos,
		&e.Ref, &e.Alt, &function, &evidence, &e.Significance, &drugs)
	if err != nil {
		return nil, fmt.Errorf("scan variant row: %w", err)
	}

	e.Function = FunctionalStatus(function)
	e.Evidence = EvidenceLevel(evidence)
	if drugs != "" {
		e.Drugs = strings.Split(drugs, ",")
	}

	return &e, nil
}
