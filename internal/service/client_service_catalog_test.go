package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/cache"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/mock"
	"github.com/MKhiriev/go-writeups/models"
)

func newTestCatalogStore(t *testing.T) (CatalogStore, *mock.MockDataService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockDataService(ctrl)
	return NewClientCatalogStore(mockAdapter, cache.New(time.Minute), logger.Nop()), mockAdapter
}

func sampleWriteups() []models.Writeup {
	return []models.Writeup{
		{Title: "Lame", Slug: "lame", Platform: models.PlatformHTB, Difficulty: models.DifficultyEasy, Status: models.StatusCompleted, Tags: []string{"smb"}},
		{Title: "Blue", Slug: "blue", Platform: models.PlatformTHM, Difficulty: models.DifficultyEasy, Status: models.StatusActive, Tags: []string{"eternalblue"}},
	}
}

func TestClientCatalogStore_Load_Cached(t *testing.T) {
	store, mockAdapter := newTestCatalogStore(t)
	ctx := context.Background()

	mockAdapter.EXPECT().ListWriteups(gomock.Any()).Return(sampleWriteups(), nil).Times(1)

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestClientCatalogStore_Load_RefreshRefetches(t *testing.T) {
	store, mockAdapter := newTestCatalogStore(t)
	ctx := context.Background()

	mockAdapter.EXPECT().ListWriteups(gomock.Any()).Return(sampleWriteups(), nil).Times(2)

	_, err := store.Load(ctx)
	require.NoError(t, err)
	store.Refresh()
	_, err = store.Load(ctx)
	require.NoError(t, err)
}

func TestClientCatalogStore_Load_Errors(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantTransport bool
	}{
		{name: "backend error", err: &adapter.RemoteError{Status: http.StatusInternalServerError, Message: "boom"}},
		{name: "transport", err: fmt.Errorf("%w: timeout", adapter.ErrRequestFailed), wantTransport: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mockAdapter := newTestCatalogStore(t)

			// failures are not cached, so the second load retries
			mockAdapter.EXPECT().ListWriteups(gomock.Any()).Return(nil, tt.err).Times(2)

			for i := 0; i < 2; i++ {
				list, err := store.Load(context.Background())
				assert.Nil(t, list)

				var fetchErr *FetchError
				require.ErrorAs(t, err, &fetchErr)
				assert.Equal(t, "load writeups", fetchErr.Op)
				assert.Equal(t, tt.wantTransport, errors.Is(err, ErrTransport))
			}
		})
	}
}

func TestClientCatalogStore_Get(t *testing.T) {
	store, mockAdapter := newTestCatalogStore(t)
	ctx := context.Background()

	lame := sampleWriteups()[0]
	mockAdapter.EXPECT().GetWriteupBySlug(gomock.Any(), "lame").Return(&lame, nil).Times(1)
	mockAdapter.EXPECT().GetWriteupBySlug(gomock.Any(), "missing").Return(nil, nil).Times(1)

	got, err := store.Get(ctx, "lame")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Lame", got.Title)

	got, err = store.Get(ctx, "lame")
	require.NoError(t, err)
	assert.Equal(t, "Lame", got.Title)

	got, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientCatalogStore_Get_EmptySlugNoRemote(t *testing.T) {
	store, _ := newTestCatalogStore(t)

	got, err := store.Get(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientCatalogStore_Get_Error(t *testing.T) {
	store, mockAdapter := newTestCatalogStore(t)

	mockAdapter.EXPECT().GetWriteupBySlug(gomock.Any(), "dup").Return(nil, adapter.ErrMultipleRows)

	_, err := store.Get(context.Background(), "dup")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "get writeup", fetchErr.Op)
	assert.ErrorIs(t, err, adapter.ErrMultipleRows)
}

func TestClientCatalogStore_Filter(t *testing.T) {
	store, _ := newTestCatalogStore(t)

	sel := models.NewFilterSelection()
	sel.Platform = string(models.PlatformTHM)

	got := store.Filter(sampleWriteups(), sel)
	require.Len(t, got, 1)
	assert.Equal(t, "blue", got[0].Slug)
}
