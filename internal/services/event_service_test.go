package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/scribe-be/internal/services"
)

func TestEventRecordAndRecent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewEventService()
	ctx := context.Background()

	blogID := "blog-1"
	require.NoError(t, svc.Record(ctx, db, "blog.created", "info", "Blog 'A' created", &blogID))
	require.NoError(t, svc.Record(ctx, db, "blog.deleted", "info", "Blog 'A' deleted", &blogID))
	require.NoError(t, svc.Record(ctx, db, "auth.guest.purged", "info", "Purged 2 expired guest account(s)", nil))

	events, err := svc.Recent(ctx, db, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	all, err := svc.Recent(ctx, db, 50)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "auth.guest.purged", all[0].Type, "newest first")
	assert.Nil(t, all[0].BlogID)
	require.NotNil(t, all[2].BlogID)
	assert.Equal(t, blogID, *all[2].BlogID)
}
