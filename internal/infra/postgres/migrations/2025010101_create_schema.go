package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_schema.sql
var createSchemaSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createSchemaSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS messages;
				DROP TABLE IF EXISTS time_instructions;
				DROP TABLE IF EXISTS faqs;
				DROP TABLE IF EXISTS judge_panels;
				DROP TABLE IF EXISTS offers;
				DROP TABLE IF EXISTS banners;
				DROP TABLE IF EXISTS events;
				DROP TABLE IF EXISTS participations;
				DROP TABLE IF EXISTS questions;
				DROP TABLE IF EXISTS quizzes;
				DROP TABLE IF EXISTS users;
			`)
			return err
		},
	)
}
