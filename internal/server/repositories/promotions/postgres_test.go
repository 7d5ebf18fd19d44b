package promotions

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestListActive_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "image_key"}).
		AddRow("p1", "2x1 Tuesdays", "Two taros for one", "banners/tuesdays.png").
		AddRow("p2", "Free topping", "", "banners/topping.png")

	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM\s+promotions\s+WHERE\s+active`).
		WillReturnRows(rows)

	promos, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(promos) != 2 || promos[0].Title != "2x1 Tuesdays" || promos[1].ImageKey != "banners/topping.png" {
		t.Fatalf("unexpected promotions: %+v", promos)
	}
}

func TestListActive_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM\s+promotions`).
		WillReturnError(errors.New("db down"))

	if _, err := repo.ListActive(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
