package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestStoreNotifier(t *testing.T) {
	dbi, err := gorm.Open(sqlite.Open("file:notify_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbi.AutoMigrate(&models.Notification{}))

	n := StoreNotifier{DB: dbi}
	err = n.Notify(context.Background(), Event{
		Kind: KindInvoiceCommentAdded, InvoiceID: 4, Title: "Comment added",
		Recipients: []uint{1, 2, 1}, Cc: []uint{2, 3, 0},
	})
	require.NoError(t, err)

	var rows []models.Notification
	require.NoError(t, dbi.Order("user_id").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.False(t, rows[1].Cc, "user 2 is a recipient, not a cc")
	assert.True(t, rows[2].Cc)
	assert.Equal(t, KindInvoiceCommentAdded, rows[0].Kind)

	require.NoError(t, n.Notify(context.Background(), Event{Kind: KindInvoiceCreated}))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Log: zerolog.New(&buf)}
	require.NoError(t, n.Notify(context.Background(), Event{Kind: KindInvoiceCreated, Number: "INV-1", Title: "created"}))
	assert.Contains(t, buf.String(), `"number":"INV-1"`)
}

type failing struct{ err error }

func (f failing) Notify(context.Context, Event) error { return f.err }

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	err := Multi{Nop{}, failing{boom}}.Notify(context.Background(), Event{})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, Multi{Nop{}}.Notify(context.Background(), Event{}))
}
