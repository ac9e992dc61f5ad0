package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vitrine/internal/notify"
)

type recorder struct {
	mu       sync.Mutex
	contents []string
}

func (r *recorder) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Content string `json:"content"`
		}

		_ = json.NewDecoder(req.Body).Decode(&body)

		r.mu.Lock()
		r.contents = append(r.contents, body.Content)
		r.mu.Unlock()

		w.WriteHeader(status)
	}
}

func TestDiscord_Notify(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(http.StatusNoContent))
	defer srv.Close()

	d := notify.NewDiscord(srv.URL, time.Second)
	require.NoError(t, d.Notify(context.Background(), "olá"))
	assert.Equal(t, []string{"olá"}, rec.contents)
}

func TestDiscord_Notify_ErrorStatus(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(http.StatusBadRequest))
	defer srv.Close()

	d := notify.NewDiscord(srv.URL, time.Second)
	assert.ErrorContains(t, d.Notify(context.Background(), "olá"), "400")
}

func TestDiscord_Disabled(t *testing.T) {
	d := notify.NewDiscord("", time.Second)

	assert.False(t, d.Enabled())
	assert.NoError(t, d.Notify(context.Background(), "ignorado"))

	d.SaleCreated(context.Background(), notify.Event{SaleID: 1})
	d.Wait()
}

func TestDiscord_SaleEvents(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(http.StatusNoContent))
	defer srv.Close()

	d := notify.NewDiscord(srv.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	d.SaleCreated(ctx, notify.Event{
		SaleID:     7,
		ExternalID: "ext-7",
		Total:      decimal.RequireFromString("35"),
		Method:     "pix",
		Customer:   "Maria",
	})

	// Cancelling the request context must not drop the notification.
	cancel()
	d.Wait()

	require.Len(t, rec.contents, 1)
	assert.Contains(t, rec.contents[0], "#7")
	assert.Contains(t, rec.contents[0], "R$ 35,00")
	assert.Contains(t, rec.contents[0], "para Maria")
}

func TestDiscord_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := notify.NewDiscord(url, 200*time.Millisecond)

	d.PaymentApproved(context.Background(), notify.Event{SaleID: 1, Total: decimal.NewFromInt(1)})
	d.Wait()

	assert.Error(t, d.Notify(context.Background(), "x"))
}

func TestDiscord_Money(t *testing.T) {
	d := notify.NewDiscord("", time.Second)

	assert.Equal(t, "R$ 35,00", d.Money(decimal.RequireFromString("35")))
	assert.Equal(t, "R$ 0,50", d.Money(decimal.RequireFromString("0.5")))
}
