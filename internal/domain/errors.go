package domain

import "fmt"

// QuoteErrorKind is the closed taxonomy of quote failures. Anything the
// remote API reports that we do not recognize collapses into
// KindUnhandledError by construction.
type QuoteErrorKind string

const (
	KindUnsupportedNetwork    QuoteErrorKind = "UnsupportedNetwork"
	KindUnsupportedToken      QuoteErrorKind = "UnsupportedToken"
	KindFeeExceedsFrom        QuoteErrorKind = "FeeExceedsFrom"
	KindInsufficientLiquidity QuoteErrorKind = "InsufficientLiquidity"
	KindNotFound              QuoteErrorKind = "NotFound"
	KindUnhandledError        QuoteErrorKind = "UnhandledError"
)

type QuoteError struct {
	Kind        QuoteErrorKind
	Description string
}

func NewQuoteError(kind QuoteErrorKind, description string) *QuoteError {
	return &QuoteError{Kind: kind, Description: description}
}

func (e *QuoteError) Error() string {
	if e.Description == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

// KindFromAPI maps a remote errorType value onto the closed taxonomy.
func KindFromAPI(errorType string) QuoteErrorKind {
	switch QuoteErrorKind(errorType) {
	case KindUnsupportedToken, KindFeeExceedsFrom, KindInsufficientLiquidity, KindNotFound:
		return QuoteErrorKind(errorType)
	default:
		return KindUnhandledError
	}
}
