// Package notify posts best-effort sale notifications to a Discord webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Event describes the sale a notification is about.
type Event struct {
	SaleID     int64
	ExternalID string
	Total      decimal.Decimal
	Method     string
	Customer   string
}

type Discord struct {
	url     string
	client  *http.Client
	timeout time.Duration
	printer *message.Printer
	wg      sync.WaitGroup
}

// NewDiscord returns a notifier that does nothing when url is empty.
func NewDiscord(url string, timeout time.Duration) *Discord {
	return &Discord{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

func (d *Discord) Enabled() bool {
	return d.url != ""
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Notify posts content synchronously.
func (d *Discord) Notify(ctx context.Context, content string) error {
	if !d.Enabled() {
		return nil
	}

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to discord: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("discord returned status %d", resp.StatusCode)
	}

	return nil
}

func (d *Discord) SaleCreated(ctx context.Context, ev Event) {
	d.async(ctx, d.printer.Sprintf("🛒 Nova venda #%d (%s): %s via %s%s",
		ev.SaleID, ev.ExternalID, d.Money(ev.Total), ev.Method, customerSuffix(ev.Customer)))
}

func (d *Discord) PaymentApproved(ctx context.Context, ev Event) {
	d.async(ctx, d.printer.Sprintf("✅ Pagamento aprovado na venda #%d (%s): %s via %s",
		ev.SaleID, ev.ExternalID, d.Money(ev.Total), ev.Method))
}

// Money formats an amount as Brazilian reais, e.g. "R$ 1.234,56".
func (d *Discord) Money(v decimal.Decimal) string {
	return d.printer.Sprintf("R$ %.2f", v.InexactFloat64())
}

// Wait blocks until every pending notification has finished.
func (d *Discord) Wait() {
	d.wg.Wait()
}

// async never blocks the caller and only logs failures. The request outlives
// the caller's context but is bounded by the notifier timeout.
func (d *Discord) async(ctx context.Context, content string) {
	if !d.Enabled() {
		return
	}

	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.Notify(ctx, content); err != nil {
			slog.Warn("failed to send discord notification", "error", err)
		}
	}()
}

func customerSuffix(name string) string {
	if name == "" {
		return ""
	}

	return " para " + name
}
