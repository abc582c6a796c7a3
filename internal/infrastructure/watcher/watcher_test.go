package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"swapcore/internal/application"
	"swapcore/internal/domain"
	"swapcore/internal/infrastructure/operator"
)

type fakeReader struct {
	orders map[domain.OrderID]*operator.OrderMetaData
	errs   map[domain.OrderID]error
	calls  int
}

func (f *fakeReader) GetOrder(_ context.Context, _ domain.ChainID, id domain.OrderID) (*operator.OrderMetaData, error) {
	f.calls++
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	return f.orders[id], nil
}

func newBook(ids ...domain.OrderID) *application.OrderBook {
	book := application.NewOrderBook()
	for _, id := range ids {
		book.AddPending(domain.Order{ID: id, ChainID: domain.Mainnet, Status: domain.OrderStatusPending})
	}
	return book
}

func Test_Tick_FulfillsExecutedOrders(t *testing.T) {
	t.Parallel()
	book := newBook("0x1", "0x2")
	reader := &fakeReader{orders: map[domain.OrderID]*operator.OrderMetaData{
		"0x1": {UID: "0x1", ExecutedBuyAmount: "900"},
		"0x2": {UID: "0x2", ExecutedSellAmount: "0"},
	}}
	w := New(book, reader, time.Second, nil)

	w.Tick(context.Background())

	order, ok := book.Order(domain.Mainnet, "0x1")
	require.True(t, ok)
	require.Equal(t, domain.OrderStatusFulfilled, order.Status)

	order, ok = book.Order(domain.Mainnet, "0x2")
	require.True(t, ok)
	require.Equal(t, domain.OrderStatusPending, order.Status)
}

func Test_Tick_CancelsInvalidatedOrders(t *testing.T) {
	t.Parallel()
	book := newBook("0x1")
	reader := &fakeReader{orders: map[domain.OrderID]*operator.OrderMetaData{
		"0x1": {UID: "0x1", Invalidated: true},
	}}
	w := New(book, reader, time.Second, nil)

	w.Tick(context.Background())

	order, _ := book.Order(domain.Mainnet, "0x1")
	require.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func Test_Tick_ExpiresPastValidTo(t *testing.T) {
	t.Parallel()
	book := newBook("0x1", "0x2")
	reader := &fakeReader{orders: map[domain.OrderID]*operator.OrderMetaData{
		"0x1": {UID: "0x1", ValidTo: 1000},
		"0x2": {UID: "0x2", ValidTo: 3000},
	}}
	w := New(book, reader, time.Second, nil)
	w.now = func() time.Time { return time.Unix(2000, 0) }

	w.Tick(context.Background())

	order, _ := book.Order(domain.Mainnet, "0x1")
	require.Equal(t, domain.OrderStatusExpired, order.Status)
	order, _ = book.Order(domain.Mainnet, "0x2")
	require.Equal(t, domain.OrderStatusPending, order.Status)
}

func Test_Tick_InvalidatedWinsOverExpiry(t *testing.T) {
	t.Parallel()
	book := newBook("0x1")
	reader := &fakeReader{orders: map[domain.OrderID]*operator.OrderMetaData{
		"0x1": {UID: "0x1", Invalidated: true, ValidTo: 1000},
	}}
	w := New(book, reader, time.Second, nil)
	w.now = func() time.Time { return time.Unix(2000, 0) }

	w.Tick(context.Background())

	order, _ := book.Order(domain.Mainnet, "0x1")
	require.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func Test_Tick_UnknownAndFailingOrdersStayPending(t *testing.T) {
	t.Parallel()
	book := newBook("0xunknown", "0xfailing")
	reader := &fakeReader{
		orders: map[domain.OrderID]*operator.OrderMetaData{},
		errs:   map[domain.OrderID]error{"0xfailing": errors.New("boom")},
	}
	w := New(book, reader, time.Second, nil)

	w.Tick(context.Background())

	require.Len(t, book.PendingIDs(domain.Mainnet), 2)
}

func Test_Tick_NoPendingNoCalls(t *testing.T) {
	t.Parallel()
	book := newBook("0x1")
	book.Fulfill(domain.Mainnet, "0x1")
	reader := &fakeReader{}
	w := New(book, reader, time.Second, nil)

	w.Tick(context.Background())

	require.Zero(t, reader.calls)
}
