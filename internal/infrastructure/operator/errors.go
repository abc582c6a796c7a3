package operator

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// OrderPostError carries the operator's rejection of an order submission
// together with a message fit for surfacing to the user.
type OrderPostError struct {
	Status      int
	ErrorType   string
	Description string
	Message     string
}

func (e *OrderPostError) Error() string { return e.Message }

// postOrderError turns an unsuccessful order submission into an
// OrderPostError with a friendly message keyed off the HTTP status and,
// for validation failures, the reported errorType.
func (c *Client) postOrderError(resp *http.Response) error {
	out := &OrderPostError{Status: resp.StatusCode}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		var body apiError
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			out.ErrorType = body.ErrorType
			out.Description = body.Description
		}
		switch out.ErrorType {
		case "DuplicateOrder":
			out.Message = "There was another identical order already submitted"
		case "InsufficientFunds":
			out.Message = "The account doesn't have enough funds"
		case "InvalidSignature":
			out.Message = "The order signature is invalid"
		case "MissingOrderData":
			out.Message = "The order has missing information"
		default:
			c.log.Error("operator: unknown order submit error",
				zap.String("error_type", out.ErrorType),
				zap.String("description", out.Description))
			out.Message = "The order was not accepted by the network"
		}
	case http.StatusForbidden:
		out.Message = "The account is deny-listed and cannot trade"
	case http.StatusTooManyRequests:
		out.Message = "The order cannot be accepted. Too many requests"
	default:
		c.log.Error("operator: order submit failed",
			zap.Int("status", resp.StatusCode))
		out.Message = fmt.Sprintf("Error adding an order (status %d)", resp.StatusCode)
	}
	return out
}
