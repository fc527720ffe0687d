package smsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Behyna/sms-services/smscampaign/pkg/httpclient"
)

type Provider interface {
	Send(ctx context.Context, from string, to string, text string) (Response, error)
}

type Config struct {
	Enable     bool          `mapstructure:"enable"`
	URL        string        `mapstructure:"url"`
	Name       string        `mapstructure:"name"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetry   int           `mapstructure:"max_retry"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type Request struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type Response struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
}

type SMSProvider struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewSMSProvider(cfg Config, client httpclient.HTTPClient) Provider {
	return &SMSProvider{cfg: cfg, client: client}
}

func (s *SMSProvider) Send(ctx context.Context, from string, to string, text string) (Response, error) {
	body, err := json.Marshal(Request{From: from, To: to, Text: text})
	if err != nil {
		return Response{}, err
	}

	headers := map[string]string{"Content-Type": "application/json"}

	resp, err := s.client.Post(ctx, s.cfg.URL, bytes.NewReader(body), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, ErrTimeout
		}

		return Response{}, ErrNetworkError
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return Response{}, ErrInvalidNumber
	case resp.StatusCode != http.StatusOK:
		return Response{}, ErrServerError
	}

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Response{}, ErrServerError
	}

	if res.Provider == "" {
		res.Provider = s.cfg.Name
	}

	return res, nil
}
