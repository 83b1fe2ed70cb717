package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/jitter"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Client — клиент внешнего Storefront API, создающего заказ.
// Единственная поддерживаемая операция — создание корзины-заказа;
// возвращённый checkoutUrl непрозрачен и нигде не разбирается.
type Client struct {
	endpoint    string
	accessToken string
	maxRetries  int
	httpClient  *http.Client
	logger      logger.Logger
}

func NewClient(cfg *cfg.StorefrontCfg, logger logger.Logger) *Client {
	return &Client{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		maxRetries:  cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id
      checkoutUrl
      cost {
        totalAmount {
          amount
          currencyCode
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type cartCreateData struct {
	CartCreate struct {
		Cart struct {
			ID          string `json:"id"`
			CheckoutURL string `json:"checkoutUrl"`
			Cost        struct {
				TotalAmount struct {
					Amount       string `json:"amount"`
					CurrencyCode string `json:"currencyCode"`
				} `json:"totalAmount"`
			} `json:"cost"`
		} `json:"cart"`
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
	} `json:"cartCreate"`
}

// CreateOrder выполняет мутацию cartCreate с повторами на транспортных
// ошибках. Ошибки уровня GraphQL повторов не получают.
func (c *Client) CreateOrder(ctx context.Context, req *usecase.CreateOrderReq) (*usecase.CreateOrderRes, error) {
	const (
		op          = "storefront.CreateOrder"
		baseBackoff = 500 * time.Millisecond
		maxBackoff  = 5 * time.Second
	)

	body, err := json.Marshal(graphQLRequest{
		Query:     cartCreateMutation,
		Variables: map[string]any{"input": buildCartInput(req)},
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var resp *graphQLResponse
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err = c.post(ctx, body)
		if err == nil {
			break
		}

		if attempt == c.maxRetries-1 {
			return nil, e.Wrap(op, e.Wrap(err.Error(), e.ErrCheckoutUnavailable))
		}

		sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		c.logger.Warnf("Order creation request failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)

		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return parseCartCreate(resp)
}

// post отправляет запрос; любая ошибка здесь считается транспортной.
func (c *Client) post(ctx context.Context, body []byte) (*graphQLResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront API status %d: %s", httpResp.StatusCode, string(data))
	}

	var resp graphQLResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}

func parseCartCreate(resp *graphQLResponse) (*usecase.CreateOrderRes, error) {
	const op = "storefront.parseCartCreate"

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, gqlErr := range resp.Errors {
			messages = append(messages, gqlErr.Message)
		}
		return nil, e.Wrap(op, fmt.Errorf("graphQL errors: %s", strings.Join(messages, "; ")))
	}

	var data cartCreateData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(data.CartCreate.UserErrors) > 0 {
		return nil, e.Wrap(op, fmt.Errorf("user error: %s", data.CartCreate.UserErrors[0].Message))
	}

	cart := data.CartCreate.Cart
	if cart.ID == "" || cart.CheckoutURL == "" {
		return nil, e.Wrap(op, fmt.Errorf("incomplete cartCreate response"))
	}

	amount, err := parseAmount(cart.Cost.TotalAmount.Amount)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total := domain.NewMoney(amount, cart.Cost.TotalAmount.CurrencyCode)
	return usecase.NewCreateOrderRes(cart.ID, cart.CheckoutURL, total), nil
}

// parseAmount переводит десятичную строку API в минорные единицы.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// buildCartInput собирает переменные мутации из строк заказа.
func buildCartInput(req *usecase.CreateOrderReq) map[string]any {
	lines := make([]map[string]any, 0, len(req.Lines))
	for _, line := range req.Lines {
		l := map[string]any{
			"merchandiseId": line.MerchandiseID,
			"quantity":      line.Quantity,
		}

		if len(line.Attributes) > 0 {
			attrs := make([]map[string]string, 0, len(line.Attributes))
			for key, value := range line.Attributes {
				attrs = append(attrs, map[string]string{"key": key, "value": value})
			}
			l["attributes"] = attrs
		}

		lines = append(lines, l)
	}

	return map[string]any{"lines": lines}
}
