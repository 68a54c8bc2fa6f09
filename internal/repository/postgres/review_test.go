package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/show-show-way/TechCompare/internal/domain"
	"github.com/show-show-way/TechCompare/internal/repository"
	"github.com/show-show-way/TechCompare/pkg/database"
)

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var reviewColumns = []string{"review_id", "product_id", "user_id", "rating", "comment", "date"}

var reviewDate = time.Date(2024, 5, 6, 7, 30, 0, 123456000, time.UTC)

func TestReviewRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	review := &domain.Review{ProductID: 3, UserID: 1, Rating: 5, Comment: "Works great", Date: reviewDate}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(3, 1, 5, "Works great", reviewDate).
		WillReturnRows(pgxmock.NewRows([]string{"review_id"}).AddRow(int64(17)))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), review))
	assert.Equal(t, int64(17), review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_ForeignKeyViolationRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	fkErr := errors.New(`insert or update on table "reviews" violates foreign key constraint "reviews_user_id_fkey"`)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(3, 404, 5, "hi", reviewDate).
		WillReturnError(fkErr)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.Review{ProductID: 3, UserID: 404, Rating: 5, Comment: "hi", Date: reviewDate})
	require.Error(t, err)
	assert.ErrorIs(t, err, fkErr)
	assert.Contains(t, err.Error(), "insert review")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_BeginFails(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	err := repo.Create(context.Background(), &domain.Review{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin review tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_CommitFails(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(3, 1, 5, "x", reviewDate).
		WillReturnRows(pgxmock.NewRows([]string{"review_id"}).AddRow(int64(1)))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &domain.Review{ProductID: 3, UserID: 1, Rating: 5, Comment: "x", Date: reviewDate})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit review")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	later := reviewDate.Add(time.Hour)
	mock.ExpectQuery(`SELECT review_id, product_id, user_id, rating, comment, date\s+FROM reviews\s+WHERE product_id = \$1\s+ORDER BY review_id ASC`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(reviewColumns).
			AddRow(int64(1), 3, 1, 4, "first", reviewDate).
			AddRow(int64(2), 3, 2, 2, "second", later))

	reviews, err := repo.ListByProductID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, int64(1), reviews[0].ID)
	assert.Equal(t, "first", reviews[0].Comment)
	assert.Equal(t, reviewDate, reviews[0].Date)
	assert.Equal(t, int64(2), reviews[1].ID)
	assert.Equal(t, 2, reviews[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("FROM reviews").
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows(reviewColumns))

	reviews, err := repo.ListByProductID(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("FROM reviews").WithArgs(3).WillReturnError(errors.New("relation \"reviews\" does not exist"))

	_, err := repo.ListByProductID(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list reviews")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_RowError(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("FROM reviews").
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(reviewColumns).
			AddRow(int64(1), 3, 1, 4, "first", reviewDate).
			RowError(0, errors.New("network dropped")))

	_, err := repo.ListByProductID(context.Background(), 3)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
