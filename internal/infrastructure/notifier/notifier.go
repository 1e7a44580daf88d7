package notifier

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

// HTTPNotifier pushes order updates to an external callback endpoint as a
// GET with query parameters. Failures are logged and dropped, the order
// write already committed.
type HTTPNotifier struct {
	callbackURL string
	client      *http.Client
}

func NewHTTPNotifier(callbackURL string) *HTTPNotifier {
	return &HTTPNotifier{
		callbackURL: callbackURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (n *HTTPNotifier) NotifyOrderUpdate(orderID int64, invoice string, status domain.OrderStatus, message string) {
	if n.callbackURL == "" {
		return
	}
	go func() {
		parsedURL, err := url.Parse(n.callbackURL)
		if err != nil {
			log.Printf("callback error: invalid URL '%s': %v", n.callbackURL, err)
			return
		}

		query := parsedURL.Query()
		query.Set("order_id", strconv.FormatInt(orderID, 10))
		query.Set("invoice", invoice)
		query.Set("status", string(status))
		query.Set("message", message)
		parsedURL.RawQuery = query.Encode()

		resp, err := n.client.Get(parsedURL.String())
		if err != nil {
			log.Printf("callback error: request failed for %s: %v", parsedURL.String(), err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("callback warning: non-2xx response from %s: %s", parsedURL.String(), resp.Status)
		}
	}()
}
