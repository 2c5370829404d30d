package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/output"
)

// ShouldFire reports whether a webhook with the given trigger fires for a
// report that did or did not contain errors. Unknown triggers act as on_errors.
func ShouldFire(trigger config.WebhookTrigger, hasErrors bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasErrors
	}
}

// Dispatch sends report to every webhook whose trigger fires and logs the outcome.
// It returns the responses of the webhooks that were attempted, keyed by name
// (or URL when unnamed). Delivery failures never abort the remaining webhooks.
func (c *Client) Dispatch(ctx context.Context, hooks []config.WebhookConfig, report *output.Report, logger zerolog.Logger) map[string]*Response {
	results := make(map[string]*Response)

	for _, wh := range hooks {
		if !ShouldFire(wh.Trigger, report.HasErrors()) {
			continue
		}

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		resp := c.Send(ctx, report, SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})
		results[name] = resp

		if resp.Success() {
			logger.Info().
				Str("webhook", name).
				Int("status", resp.StatusCode).
				Dur("duration", resp.Duration).
				Msg("Webhook sent")
		} else {
			logger.Error().
				Err(resp.Error).
				Str("webhook", name).
				Msg("Webhook failed")
		}
	}

	return results
}
