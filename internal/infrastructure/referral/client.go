package referral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type accrueRequest struct {
	UserID  int64   `json:"user_id"`
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPReferralClient talks to the referral service that credits referrer
// rewards once an order is delivered.
type HTTPReferralClient struct {
	Address string
	client  *http.Client
}

func NewHTTPReferralClient(address string) *HTTPReferralClient {
	return &HTTPReferralClient{
		Address: address,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPReferralClient) AccrueDeliveryReward(ctx context.Context, userID, orderID int64, amount float64) error {
	requestBodyBytes, err := json.Marshal(accrueRequest{
		UserID:  userID,
		OrderID: orderID,
		Amount:  amount,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/referrals/accrue", c.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var payload errorResponse
	if err := json.Unmarshal(responseBodyBytes, &payload); err != nil {
		return fmt.Errorf("referral service returned %s", response.Status)
	}
	return errors.New(payload.Error)
}
