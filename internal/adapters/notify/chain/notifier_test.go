package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/domain"
	portmocks "github.com/bnema/guide-cli/internal/ports/mocks"
)

var checkIn = domain.Notification{Title: "Check in", Body: "How are you arriving?"}

func TestNotifyUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier, err := NewNotifierChecked(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Notify(mock.Anything, checkIn).Return(nil).Once()

	require.NoError(t, notifier.Notify(context.Background(), checkIn))
}

func TestNotifyFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier, err := NewNotifierChecked(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Notify(mock.Anything, checkIn).Return(errors.New("notify-send unavailable")).Once()
	fallback.EXPECT().Notify(mock.Anything, checkIn).Return(nil).Once()

	require.NoError(t, notifier.Notify(context.Background(), checkIn))
}

func TestNotifyReturnsCombinedErrorWhenBothFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier, err := NewNotifierChecked(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Notify(mock.Anything, checkIn).Return(errors.New("desktop failed")).Once()
	fallback.EXPECT().Notify(mock.Anything, checkIn).Return(errors.New("stderr closed")).Once()

	err = notifier.Notify(context.Background(), checkIn)
	require.Error(t, err)
	assert.ErrorContains(t, err, "desktop failed")
	assert.ErrorContains(t, err, "stderr closed")
}

func TestNotifySkipsFallbackOnCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier, err := NewNotifierChecked(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Notify(mock.Anything, checkIn).Return(context.Canceled).Once()

	require.ErrorIs(t, notifier.Notify(context.Background(), checkIn), context.Canceled)
}

func TestNewNotifierCheckedRejectsNil(t *testing.T) {
	t.Parallel()

	_, err := NewNotifierChecked(nil, portmocks.NewMockNotifier(t))
	require.ErrorIs(t, err, errNilPrimaryNotifier)

	_, err = NewNotifierChecked(portmocks.NewMockNotifier(t), nil)
	require.ErrorIs(t, err, errNilFallbackNotifier)
}
