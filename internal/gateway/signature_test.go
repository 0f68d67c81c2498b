package gateway

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func TestVerifyWebhookSignatureRoundTrip(t *testing.T) {
    body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
    sig := Sign(body, testSecret)

    assert.True(t, VerifyWebhookSignature(body, sig, testSecret))
}

func TestVerifyWebhookSignatureRejectsTamperedBody(t *testing.T) {
    body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
    sig := Sign(body, testSecret)

    tampered := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_2"}}}}`)
    assert.False(t, VerifyWebhookSignature(tampered, sig, testSecret))
}

func TestVerifyWebhookSignatureFailsClosed(t *testing.T) {
    body := []byte(`{}`)
    // 签名头缺失
    assert.False(t, VerifyWebhookSignature(body, "", testSecret))
    // 密钥未配置
    assert.False(t, VerifyWebhookSignature(body, Sign(body, testSecret), ""))
    // 错误密钥
    assert.False(t, VerifyWebhookSignature(body, Sign(body, "other"), testSecret))
}

func TestVerifyCallbackSignature(t *testing.T) {
    sig := Sign([]byte("order_1|pay_1"), testSecret)

    assert.True(t, VerifyCallbackSignature("order_1", "pay_1", sig, testSecret))
    assert.False(t, VerifyCallbackSignature("order_1", "pay_2", sig, testSecret))
    assert.False(t, VerifyCallbackSignature("", "pay_1", sig, testSecret))
    assert.False(t, VerifyCallbackSignature("order_1", "pay_1", "", testSecret))
}
