package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TwilioSMS sends texts through the Twilio Messages API. When not
// configured (no account SID) it logs the message instead of sending,
// which keeps local environments working without credentials.
type TwilioSMS struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

func NewTwilioSMS(accountSID, authToken, from string) *TwilioSMS {
	return &TwilioSMS{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TwilioSMS) Send(ctx context.Context, to, body string) error {
	if s.accountSID == "" {
		log.Info().Str("to", to).Str("body", body).Msg("sms simulated")
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	form := url.Values{}
	form.Set("From", s.from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}
