package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"swapcore/internal/domain"
)

// Client is typed access to the remote quoting/order API. It never retries:
// failure recovery policy lives with the quote engine and the order watcher.
type Client struct {
	endpoints map[domain.ChainID]string
	http      *http.Client
	log       *zap.Logger
}

func NewClient(endpoints map[domain.ChainID]string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{endpoints: endpoints, http: httpClient, log: log}
}

// apiBase resolves the versioned API root for a chain.
func (c *Client) apiBase(chainID domain.ChainID) (string, error) {
	base, ok := c.endpoints[chainID]
	if !ok || base == "" {
		return "", domain.NewQuoteError(domain.KindUnsupportedNetwork,
			fmt.Sprintf("the operator API is not deployed on network %d", chainID))
	}
	return base + "/v1", nil
}

// apiError is the wire shape of every non-2xx response body.
type apiError struct {
	ErrorType   string `json:"errorType"`
	Description string `json:"description"`
}

type feeResponse struct {
	Amount         string    `json:"amount"`
	ExpirationDate time.Time `json:"expirationDate"`
}

type priceResponse struct {
	Token  string  `json:"token"`
	Amount *string `json:"amount"`
}

func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	return amount, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.NewQuoteError(domain.KindUnhandledError, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewQuoteError(domain.KindUnhandledError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body apiError
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return domain.NewQuoteError(domain.KindUnhandledError,
				fmt.Sprintf("status %d with undecodable body", resp.StatusCode))
		}
		return domain.NewQuoteError(domain.KindFromAPI(body.ErrorType), body.Description)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewQuoteError(domain.KindUnhandledError, err.Error())
	}
	return nil
}

// GetFeeQuote fetches the protocol fee for the given trade parameters.
func (c *Client) GetFeeQuote(ctx context.Context, params domain.QuoteParams) (domain.FeeInformation, error) {
	base, err := c.apiBase(params.ChainID)
	if err != nil {
		return domain.FeeInformation{}, err
	}
	q := url.Values{}
	q.Set("sellToken", params.SellToken.Hex())
	q.Set("buyToken", params.BuyToken.Hex())
	q.Set("amount", params.Amount.String())
	q.Set("kind", string(params.Kind))

	c.log.Debug("operator: get fee",
		zap.Uint64("chain", uint64(params.ChainID)),
		zap.String("sell_token", params.SellToken.Hex()),
		zap.String("amount", params.Amount.String()))

	var body feeResponse
	if err := c.getJSON(ctx, base+"/fee?"+q.Encode(), &body); err != nil {
		return domain.FeeInformation{}, err
	}
	amount, err := parseAmount(body.Amount)
	if err != nil {
		return domain.FeeInformation{}, domain.NewQuoteError(domain.KindUnhandledError, err.Error())
	}
	return domain.FeeInformation{Amount: amount, ExpirationDate: body.ExpirationDate}, nil
}

// GetPriceQuote fetches a price estimate from the operator's own market
// endpoint. A null amount in the response means no viable price.
func (c *Client) GetPriceQuote(ctx context.Context, params domain.PriceQuoteParams) (domain.PriceInformation, error) {
	base, err := c.apiBase(params.ChainID)
	if err != nil {
		return domain.PriceInformation{}, err
	}
	u := fmt.Sprintf("%s/markets/%s-%s/%s/%s",
		base, params.BaseToken.Hex(), params.QuoteToken.Hex(), params.Kind, params.Amount.String())

	c.log.Debug("operator: get price",
		zap.Uint64("chain", uint64(params.ChainID)),
		zap.String("market", params.BaseToken.Hex()+"-"+params.QuoteToken.Hex()))

	var body priceResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return domain.PriceInformation{}, err
	}
	out := domain.PriceInformation{Token: domain.Address{}}
	if body.Token != "" {
		out.Token = commonAddress(body.Token)
	}
	if body.Amount != nil {
		amount, err := parseAmount(*body.Amount)
		if err != nil {
			return domain.PriceInformation{}, domain.NewQuoteError(domain.KindUnhandledError, err.Error())
		}
		out.Amount = amount
	}
	return out, nil
}

// GetOrder returns the remote metadata for an order, or nil when the order is
// unknown to the API.
func (c *Client) GetOrder(ctx context.Context, chainID domain.ChainID, id domain.OrderID) (*OrderMetaData, error) {
	base, err := c.apiBase(chainID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/orders/"+string(id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get order %s: status %d", id, resp.StatusCode)
	}
	var meta OrderMetaData
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("get order %s: decode: %w", id, err)
	}
	return &meta, nil
}

// PostSignedOrder forwards an already-signed order and returns the uid the
// settlement layer assigned. The 201 body is a bare JSON string.
func (c *Client) PostSignedOrder(ctx context.Context, chainID domain.ChainID, order SignedOrder) (domain.OrderID, error) {
	base, err := c.apiBase(chainID)
	if err != nil {
		return "", err
	}

	c.log.Info("operator: post signed order",
		zap.Uint64("chain", uint64(chainID)),
		zap.String("sell_token", order.SellToken.Hex()),
		zap.String("buy_token", order.BuyToken.Hex()),
		zap.String("kind", string(order.Kind)))

	payload, err := json.Marshal(order)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.postOrderError(resp)
	}

	var uid string
	if err := json.NewDecoder(resp.Body).Decode(&uid); err != nil {
		return "", fmt.Errorf("post order: decode uid: %w", err)
	}
	c.log.Info("operator: order accepted", zap.String("uid", uid))
	return domain.OrderID(uid), nil
}
