package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"swapcore/internal/application"
	"swapcore/internal/domain"
	"swapcore/internal/infrastructure/operator"
)

// OrderPoster is the slice of the operator API the order endpoint needs.
type OrderPoster interface {
	PostSignedOrder(ctx context.Context, chainID domain.ChainID, order operator.SignedOrder) (domain.OrderID, error)
}

type Server struct {
	quotes        *application.QuoteService
	store         *application.QuoteStore
	book          *application.OrderBook
	poster        OrderPoster
	notifications *RingSink
	ping          func(context.Context) error
}

func NewServer(
	quotes *application.QuoteService,
	store *application.QuoteStore,
	book *application.OrderBook,
	poster OrderPoster,
	notifications *RingSink,
	ping func(context.Context) error,
) *Server {
	return &Server{
		quotes:        quotes,
		store:         store,
		book:          book,
		poster:        poster,
		notifications: notifications,
		ping:          ping,
	}
}

type refetchRequest struct {
	ChainID   uint64 `json:"chainId"`
	SellToken string `json:"sellToken"`
	BuyToken  string `json:"buyToken"`
	Amount    string `json:"amount"`
	Kind      string `json:"kind"`
	FetchFee  bool   `json:"fetchFee"`
}

type feeDTO struct {
	Amount         string    `json:"amount"`
	ExpirationDate time.Time `json:"expirationDate"`
}

type priceDTO struct {
	Token  string  `json:"token"`
	Amount *string `json:"amount"`
}

type quoteDTO struct {
	ChainID   uint64    `json:"chainId"`
	SellToken string    `json:"sellToken"`
	BuyToken  string    `json:"buyToken"`
	Amount    string    `json:"amount"`
	Kind      string    `json:"kind"`
	Fee       *feeDTO   `json:"fee,omitempty"`
	Price     *priceDTO `json:"price,omitempty"`
	Error     string    `json:"error,omitempty"`
	LastCheck time.Time `json:"lastCheck"`
}

func quoteToDTO(rec application.QuoteRecord) quoteDTO {
	out := quoteDTO{
		ChainID:   uint64(rec.Params.ChainID),
		SellToken: rec.Params.SellToken.Hex(),
		BuyToken:  rec.Params.BuyToken.Hex(),
		Amount:    rec.Params.Amount.String(),
		Kind:      string(rec.Params.Kind),
		Error:     string(rec.Error),
		LastCheck: rec.LastCheck,
	}
	if rec.Fee != nil {
		out.Fee = &feeDTO{Amount: rec.Fee.Amount.String(), ExpirationDate: rec.Fee.ExpirationDate}
	}
	if rec.Price != nil {
		p := &priceDTO{Token: rec.Price.Token.Hex()}
		if rec.Price.Amount != nil {
			s := rec.Price.Amount.String()
			p.Amount = &s
		}
		out.Price = p
	}
	return out
}

// RefetchQuote runs a full quote cycle and returns the resulting record.
// Failures land in the record's error field, not in the HTTP status.
func (s *Server) RefetchQuote(w http.ResponseWriter, r *http.Request) {
	var body refetchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	params, ok := parseQuoteParams(w, body)
	if !ok {
		return
	}

	var previous *domain.FeeInformation
	if rec, found := s.store.Last(params.ChainID, params.SellToken); found {
		previous = rec.Fee
	}
	s.quotes.RefetchQuote(r.Context(), application.RefetchParams{
		Params:      params,
		FetchFee:    body.FetchFee,
		PreviousFee: previous,
	})

	rec, found := s.store.Last(params.ChainID, params.SellToken)
	if !found {
		// A stale refetch was superseded before it could write.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, quoteToDTO(rec))
}

func parseQuoteParams(w http.ResponseWriter, body refetchRequest) (domain.QuoteParams, bool) {
	if !common.IsHexAddress(body.SellToken) || !common.IsHexAddress(body.BuyToken) {
		badRequest(w, "sellToken and buyToken must be hex addresses")
		return domain.QuoteParams{}, false
	}
	amount, ok := new(big.Int).SetString(body.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		badRequest(w, "amount must be a positive decimal string")
		return domain.QuoteParams{}, false
	}
	kind := domain.OrderKind(body.Kind)
	if !kind.Valid() {
		badRequest(w, "kind must be sell or buy")
		return domain.QuoteParams{}, false
	}
	return domain.QuoteParams{
		SellToken: common.HexToAddress(body.SellToken),
		BuyToken:  common.HexToAddress(body.BuyToken),
		Amount:    amount,
		Kind:      kind,
		ChainID:   domain.ChainID(body.ChainID),
	}, true
}

// LastQuote returns the live record for a (chain, sell token) key.
func (s *Server) LastQuote(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	token := r.URL.Query().Get("token")
	if !common.IsHexAddress(token) {
		badRequest(w, "token must be a hex address")
		return
	}
	rec, found := s.store.Last(chainID, common.HexToAddress(token))
	if !found {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, quoteToDTO(rec))
}

type postOrderRequest struct {
	ChainID uint64               `json:"chainId"`
	Summary string               `json:"summary"`
	Order   operator.SignedOrder `json:"order"`
}

type postOrderResponse struct {
	UID string `json:"uid"`
}

// PostOrder forwards a signed order and tracks it as pending on success.
func (s *Server) PostOrder(w http.ResponseWriter, r *http.Request) {
	var body postOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	chainID := domain.ChainID(body.ChainID)

	uid, err := s.poster.PostSignedOrder(r.Context(), chainID, body.Order)
	if err != nil {
		var pe *operator.OrderPostError
		if errors.As(err, &pe) {
			writeError(w, pe.Status, pe.Message)
			return
		}
		var qe *domain.QuoteError
		if errors.As(err, &qe) && qe.Kind == domain.KindUnsupportedNetwork {
			badRequest(w, qe.Description)
			return
		}
		internalError(w)
		return
	}

	s.book.AddPending(domain.Order{
		ID:      uid,
		ChainID: chainID,
		Summary: body.Summary,
		Status:  domain.OrderStatusPending,
	})
	writeJSON(w, http.StatusCreated, postOrderResponse{UID: string(uid)})
}

// Orders lists orders on a chain, optionally filtered by status.
func (s *Server) Orders(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	if status == "" {
		var all []domain.Order
		for _, st := range []domain.OrderStatus{
			domain.OrderStatusPending, domain.OrderStatusFulfilled,
			domain.OrderStatusExpired, domain.OrderStatusCancelled,
		} {
			all = append(all, s.book.ByStatus(chainID, st)...)
		}
		writeJSON(w, http.StatusOK, orderList(all))
		return
	}
	st := domain.OrderStatus(status)
	switch st {
	case domain.OrderStatusPending, domain.OrderStatusFulfilled,
		domain.OrderStatusExpired, domain.OrderStatusCancelled:
	default:
		badRequest(w, "unknown status")
		return
	}
	writeJSON(w, http.StatusOK, orderList(s.book.ByStatus(chainID, st)))
}

func orderList(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}

// Notifications returns recent order notifications, newest first.
func (s *Server) Notifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.notifications.List())
}

func chainParam(w http.ResponseWriter, r *http.Request) (domain.ChainID, bool) {
	raw := r.URL.Query().Get("chainId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		badRequest(w, "chainId must be a positive integer")
		return 0, false
	}
	return domain.ChainID(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
