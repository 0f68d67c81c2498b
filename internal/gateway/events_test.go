package gateway

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseEventPaymentCaptured(t *testing.T) {
    raw := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_9"}}}}`)
    ev, err := ParseEvent(raw)
    require.NoError(t, err)

    captured, ok := ev.(PaymentCaptured)
    require.True(t, ok)
    assert.Equal(t, "order_9", captured.GatewayOrderID)
    assert.Equal(t, "pay_9", captured.GatewayPaymentID)
}

func TestParseEventPaymentFailed(t *testing.T) {
    raw := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_9","error_description":"insufficient funds"}}}}`)
    ev, err := ParseEvent(raw)
    require.NoError(t, err)

    failed, ok := ev.(PaymentFailed)
    require.True(t, ok)
    assert.Equal(t, "order_9", failed.GatewayOrderID)
    assert.Equal(t, "insufficient funds", failed.Reason)
}

func TestParseEventFailedWithoutReasonGetsDefault(t *testing.T) {
    raw := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_9"}}}}`)
    ev, err := ParseEvent(raw)
    require.NoError(t, err)
    assert.Equal(t, "payment failed", ev.(PaymentFailed).Reason)
}

func TestParseEventIgnoresUnknownAndRedundantTypes(t *testing.T) {
    // order.paid 由 payment.captured 覆盖，归入忽略路径
    ev, err := ParseEvent([]byte(`{"event":"order.paid","payload":{}}`))
    require.NoError(t, err)
    assert.IsType(t, Ignored{}, ev)

    ev, err = ParseEvent([]byte(`{"event":"refund.created","payload":{}}`))
    require.NoError(t, err)
    assert.Equal(t, "refund.created", ev.EventType())
}

func TestParseEventMalformed(t *testing.T) {
    _, err := ParseEvent([]byte(`not json`))
    assert.ErrorIs(t, err, ErrMalformedEvent)

    _, err = ParseEvent([]byte(`{"payload":{}}`))
    assert.ErrorIs(t, err, ErrMalformedEvent)

    // 成功事件缺 order_id 视为畸形，不能静默吞掉
    _, err = ParseEvent([]byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`))
    assert.ErrorIs(t, err, ErrMalformedEvent)
}
