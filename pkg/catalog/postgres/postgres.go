// Package postgres loads the catalog from a PostgreSQL products table.
package postgres

import (
	"context"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"nostalgiajars/pkg/catalog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Source reads products from PostgreSQL.
type Source struct {
	db *sqlx.DB
}

// Open connects to the database at url using the lib/pq driver.
func Open(url string) (*Source, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return New(db), nil
}

// New creates a PostgreSQL catalog source.
func New(db *sqlx.DB) *Source {
	return &Source{db: db}
}

// Close releases the underlying connection pool.
func (s *Source) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded schema and seed migrations.
func (s *Source) Migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "migration source")
	}
	driver, err := migratepg.WithInstance(s.db.DB, &migratepg.Config{})
	if err != nil {
		return errors.Wrap(err, "migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "migrator")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

type productRow struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Tagline     string `db:"tagline"`
	Price       int    `db:"price"`
	ImageURL    string `db:"image_url"`
	SpiceLevel  int    `db:"spice_level"`
	Category    string `db:"category"`
}

func (r productRow) product() catalog.Product {
	return catalog.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Tagline:     r.Tagline,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		SpiceLevel:  r.SpiceLevel,
		Category:    catalog.Category(r.Category),
	}
}

const listProducts = `SELECT id, name, description, tagline, price, image_url, spice_level, category
FROM products ORDER BY position`

// Load reads every product once and builds an immutable catalog.
func (s *Source) Load(ctx context.Context) (*catalog.Catalog, error) {
	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, listProducts); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	products := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.product())
	}
	c, err := catalog.New(products)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog")
	}
	return c, nil
}
