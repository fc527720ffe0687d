package service

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/pkg/smsprovider"
	"go.uber.org/zap"
)

const defaultRetryDelay = 100 * time.Millisecond

type ProviderService interface {
	SendWithRetry(ctx context.Context, from, to, text string) (smsprovider.Response, error)
}

type Provider struct {
	provider smsprovider.Provider
	logger   *zap.Logger
	config   smsprovider.Config
}

func NewProviderService(provider smsprovider.Provider, logger *zap.Logger, config *config.Config) ProviderService {
	return &Provider{provider: provider, logger: logger, config: config.Provider}
}

// SendWithRetry retries transient provider failures with a linear delay. Permanent
// failures and context cancellation stop the loop immediately.
func (p *Provider) SendWithRetry(ctx context.Context, from, to, text string) (smsprovider.Response, error) {
	maxRetry := max(p.config.MaxRetry, 1)
	retryDelay := p.config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetry; attempt++ {
		callCtx := ctx
		cancel := func() {}
		if p.config.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		}

		response, err := p.provider.Send(callCtx, from, to, text)
		cancel()

		if err == nil {
			p.logger.Debug("Provider accepted SMS",
				zap.String("providerMessageID", response.MessageID),
				zap.String("status", response.Status),
				zap.Int("attempt", attempt))
			return response, nil
		}

		lastErr = err
		p.logger.Warn("Provider call failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("to", to))

		if smsprovider.IsPermanent(err) {
			return smsprovider.Response{}, err
		}

		if attempt < maxRetry {
			select {
			case <-time.After(time.Duration(attempt) * retryDelay):
			case <-ctx.Done():
				return smsprovider.Response{}, ctx.Err()
			}
		}
	}

	p.logger.Error("Provider retries exhausted",
		zap.Error(lastErr),
		zap.Int("maxRetry", maxRetry),
		zap.String("to", to))

	return smsprovider.Response{}, lastErr
}
