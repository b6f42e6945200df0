package repositories_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/mayorista/app/repositories"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPostgresBatchSetSortOrderRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGormProductRepository(gormDB)

	update := regexp.QuoteMeta(`UPDATE "products" SET`)
	mock.ExpectBegin()
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.BatchSetSortOrder(context.Background(), []string{"a", "ghost", "c"}, 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBatchSetSortOrderCommits(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGormProductRepository(gormDB)

	update := regexp.QuoteMeta(`UPDATE "products" SET`)
	mock.ExpectBegin()
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BatchSetSortOrder(context.Background(), []string{"a", "b"}, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
