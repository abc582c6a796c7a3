package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapcore/internal/domain"
)

func transitionOf(kind TransitionKind) Transition {
	return Transition{
		Kind:    kind,
		ChainID: domain.Mainnet,
		Order:   domain.Order{ID: "0xa1", ChainID: domain.Mainnet, Summary: "Swap 1 WETH for 420 GNO"},
	}
}

func Test_NotificationFor_Submitted(t *testing.T) {
	t.Parallel()
	p := NotificationFor(transitionOf(TransitionSubmitted))
	require.NotEmpty(t, p.ID)
	require.Equal(t, domain.OrderStatus("submitted"), p.Status)
	require.Equal(t, "Swap 1 WETH for 420 GNO", p.Summary)
	require.Nil(t, p.Success)
}

func Test_NotificationFor_Fulfilled(t *testing.T) {
	t.Parallel()
	p := NotificationFor(transitionOf(TransitionFulfilled))
	require.Equal(t, domain.OrderStatusFulfilled, p.Status)
	require.Equal(t, "was traded", p.Descriptor)
}

func Test_NotificationFor_Cancelled(t *testing.T) {
	t.Parallel()
	p := NotificationFor(transitionOf(TransitionCancelled))
	require.NotNil(t, p.Success)
	require.True(t, *p.Success)
	require.Equal(t, "Order 'Swap 1 WETH for 420 GNO' was cancelled", p.Summary)
}

func Test_NotificationFor_Expired(t *testing.T) {
	t.Parallel()
	p := NotificationFor(transitionOf(TransitionExpired))
	require.NotNil(t, p.Success)
	require.False(t, *p.Success)
	require.Equal(t, domain.OrderStatusExpired, p.Status)
}

func Test_CancellationSummary_NoSummary(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Order 0xa1 was cancelled", CancellationSummary("0xa1", ""))
}

func Test_CueFor(t *testing.T) {
	t.Parallel()
	require.Equal(t, CueSend, CueFor(TransitionSubmitted, CueError))
	require.Equal(t, CueSuccess, CueFor(TransitionFulfilled, CueError))
	require.Equal(t, CueError, CueFor(TransitionExpired, CueError))
	// cancellation is a configurable mapping entry
	require.Equal(t, CueError, CueFor(TransitionCancelled, CueError))
	require.Equal(t, CueSuccess, CueFor(TransitionCancelled, CueSuccess))
}

func Test_CuePlayer_HandlesAreBuiltOnce(t *testing.T) {
	t.Parallel()
	var handles []*AudioHandle
	player := NewCuePlayer(func(h *AudioHandle) { handles = append(handles, h) })

	player.Play(CueSend)
	player.Play(CueSend)
	player.Play(CueError)

	require.Len(t, handles, 3)
	require.Same(t, handles[0], handles[1])
	require.NotSame(t, handles[0], handles[2])
	require.Equal(t, "/audio/send.mp3", handles[0].Path)
	require.Equal(t, "/audio/error.mp3", handles[2].Path)
}
