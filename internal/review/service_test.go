package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview/internal/book"
)

func newTestService(t *testing.T) (*Service, *book.MemoryRepo) {
	t.Helper()
	repo, err := book.NewMemoryRepo([]book.Book{
		{ISBN: "111", Title: "Pride and Prejudice", Author: "Jane Austen"},
		{ISBN: "222", Title: "Things Fall Apart", Author: "Chinua Achebe"},
		{ISBN: "333", Title: "Emma", Author: "Jane Austen"},
	})
	require.NoError(t, err)

	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC) }
	return svc, repo
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults rating and stamps date", func(t *testing.T) {
		svc, _ := newTestService(t)

		rv, err := svc.Upsert(ctx, "111", "alice", "Loved it", 0)
		require.NoError(t, err)

		assert.Equal(t, book.Review{User: "alice", Comment: "Loved it", Rating: 5, Date: "2024-03-09"}, rv)
	})

	t.Run("overwrites previous review", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.Upsert(ctx, "111", "alice", "first", 2)
		require.NoError(t, err)
		_, err = svc.Upsert(ctx, "111", "alice", "second", 4)
		require.NoError(t, err)

		b, err := repo.GetByISBN(ctx, "111")
		require.NoError(t, err)
		require.Len(t, b.Reviews, 1)
		assert.Equal(t, "second", b.Reviews["alice"].Comment)
		assert.Equal(t, 4, b.Reviews["alice"].Rating)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestService(t)

		tests := []struct {
			name    string
			isbn    string
			comment string
			rating  int
			wantErr error
		}{
			{"unknown book wins over bad body", "999", "", 9, book.ErrNotFound},
			{"empty comment", "111", "", 3, ErrMissingComment},
			{"blank comment", "111", "   ", 3, ErrMissingComment},
			{"rating too high", "111", "ok", 6, ErrInvalidRating},
			{"negative rating", "111", "ok", -1, ErrInvalidRating},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Upsert(ctx, tt.isbn, "alice", tt.comment, tt.rating)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestService_ListByUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	entries, err := svc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	_, err = svc.Upsert(ctx, "333", "alice", "Emma review", 3)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "111", "alice", "P&P review", 5)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "222", "bob", "not alice", 1)
	require.NoError(t, err)

	entries, err = svc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{
		ID:        "111-alice",
		Book:      BookRef{ID: "111", Title: "Pride and Prejudice", Author: "Jane Austen"},
		Rating:    5,
		Comment:   "P&P review",
		CreatedAt: "2024-03-09",
	}, entries[0])
	assert.Equal(t, "333-alice", entries[1].ID)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.Delete(ctx, "999", "alice"), book.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "111", "alice"), book.ErrReviewNotFound)

	_, err := svc.Upsert(ctx, "111", "alice", "bye", 0)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "111", "alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "111", "alice"), book.ErrReviewNotFound)
}

func TestService_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	boom := errors.New("boom")

	mockRepo.EXPECT().List(gomock.Any()).Return(nil, boom)
	_, err := svc.ListByUser(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)

	mockRepo.EXPECT().GetByISBN(gomock.Any(), "111").Return(book.Book{ISBN: "111"}, nil)
	mockRepo.EXPECT().PutReview(gomock.Any(), "111", gomock.Any()).Return(boom)
	_, err = svc.Upsert(context.Background(), "111", "alice", "text", 0)
	assert.ErrorIs(t, err, boom)
}
