package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"refdata/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedEntity struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Apply inserts default reference data for manual testing. It is idempotent:
// seed ids are derived from the title, and existing rows are left untouched.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	var collections map[string][]seedEntity
	if err := yaml.Unmarshal(seedYAML, &collections); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	for collection, entities := range collections {
		if _, ok := domain.KindByCollection(collection); !ok {
			return fmt.Errorf("seed data references unknown collection %q", collection)
		}
		for i, e := range entities {
			if err := insertEntity(ctx, pool, collection, e, i); err != nil {
				return fmt.Errorf("seed %s/%s: %w", collection, e.Title, err)
			}
		}
	}
	return nil
}

func insertEntity(ctx context.Context, pool *pgxpool.Pool, collection string, e seedEntity, position int) error {
	const q = `
INSERT INTO ref_entities (collection, id, title, description, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (collection, id) DO NOTHING
`
	_, err := pool.Exec(ctx, q, collection, seedID(collection, e.Title), e.Title, e.Description, position)
	return err
}

// seedID derives a stable id from the title so re-running the seeder never
// duplicates rows.
func seedID(collection, title string) string {
	slug := strings.ToLower(title)
	slug = strings.NewReplacer(" ", "-", "/", "-").Replace(slug)
	return "seed-" + collection + "-" + slug
}
