package gateway

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
)

// VerifyWebhookSignature 校验异步 webhook：对收到的原始请求体字节做
// HMAC-SHA256（十六进制），与网关签名头比对。任何一方缺失都按不可信处理，
// 绝不能先解析再重新序列化后比对。
func VerifyWebhookSignature(rawBody []byte, signature, secret string) bool {
    if signature == "" || secret == "" {
        return false
    }
    return verify(rawBody, signature, secret)
}

// VerifyCallbackSignature 校验浏览器回跳：签名串为 "orderID|paymentID"，
// 这是网关文档约定的固定拼接格式。
func VerifyCallbackSignature(gatewayOrderID, gatewayPaymentID, signature, secret string) bool {
    if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" || secret == "" {
        return false
    }
    return verify([]byte(gatewayOrderID+"|"+gatewayPaymentID), signature, secret)
}

func verify(payload []byte, signature, secret string) bool {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write(payload)
    expected := hex.EncodeToString(mac.Sum(nil))
    return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign 生成与校验端同构的签名，测试与对接联调用
func Sign(payload []byte, secret string) string {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write(payload)
    return hex.EncodeToString(mac.Sum(nil))
}
