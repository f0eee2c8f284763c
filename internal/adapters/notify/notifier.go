// Package notify delivers inquiry notifications to the sales team through shoutrrr.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/k3a/html2text"
	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

var inquiryTmpl = template.Must(template.New("inquiry").Parse(`
{{- with .Contact}}<h2>Contact message from {{.Name}}</h2>
<p>Email: {{.Email}}<br>
{{- if .Phone}}Phone: {{.Phone}}<br>{{end}}
{{- if .Company}}Company: {{.Company}}<br>{{end}}
{{- if .Service}}Service: {{.Service}}<br>{{end}}</p>
<p>{{.Message}}</p>
{{- end}}
{{- with .Quote}}<h2>Quote request from {{.ContactName}}</h2>
<p>Customer type: {{.CustomerType}}<br>
{{- if .CompanyName}}Company: {{.CompanyName}}<br>{{end}}
Email: {{.Email}}<br>
Phone: {{.Phone}}<br>
Fuel: {{.FuelType}}<br>
Quantity: {{.Quantity}} L<br>
Delivery: {{.DeliveryLocation}}</p>
{{- if .Message}}<p>{{.Message}}</p>{{end}}
{{- end}}
<p>Reference {{.ID}}</p>`))

// Notifier implements ports.NotificationService.
type Notifier struct {
	sender *router.ServiceRouter
}

// New builds a sender for the given shoutrrr URLs (e.g. "smtp://...", "logger://").
func New(timeout time.Duration, urls ...string) (*Notifier, error) {
	if len(urls) == 0 {
		return nil, errors.New("notify: at least one URL is required")
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(slogWriter{}, "", 0))
	return &Notifier{sender: sender}, nil
}

// Title returns the notification title for inq.
func Title(inq *domain.Inquiry) string {
	if inq.Kind == domain.KindQuote {
		return "New fuel quote request"
	}
	return "New contact message"
}

// Body renders inq as plain text.
func Body(inq *domain.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryTmpl.Execute(&buf, inq); err != nil {
		return "", err
	}
	return html2text.HTML2Text(buf.String()), nil
}

// NotifyInquiry sends inq to every configured service; the first failure is returned.
func (n *Notifier) NotifyInquiry(ctx context.Context, inq *domain.Inquiry) error {
	body, err := Body(inq)
	if err != nil {
		return err
	}
	params := stypes.Params{}
	params.SetTitle(Title(inq))

	for _, err := range n.sender.Send(body, &params) {
		if err != nil {
			return fmt.Errorf("notify %s: %w", inq.ID, err)
		}
	}
	slog.InfoContext(ctx, "inquiry notification sent", "id", inq.ID, "kind", inq.Kind)
	return nil
}

type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	slog.Debug("shoutrrr", "msg", strings.TrimSpace(string(p)))
	return len(p), nil
}
