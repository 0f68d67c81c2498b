package config

import (
    "strings"

    "github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
    Server   ServerConfig   `mapstructure:"server"`
    Database DatabaseConfig `mapstructure:"database"`
    Redis    RedisConfig    `mapstructure:"redis"`
    Razorpay RazorpayConfig `mapstructure:"razorpay"`
    SMTP     SMTPConfig     `mapstructure:"smtp"`
    JWT      JWTConfig      `mapstructure:"jwt"`
    Frontend FrontendConfig `mapstructure:"frontend"`
    Sentry   SentryConfig   `mapstructure:"sentry"`
    Otel     OtelConfig     `mapstructure:"otel"`
    Checkout CheckoutConfig `mapstructure:"checkout"`
    LogLevel string         `mapstructure:"log_level"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Driver string `mapstructure:"driver"` // sqlite / postgres
    DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

// RazorpayConfig 支付网关凭据；WebhookSecret 独立于 KeySecret 配置
type RazorpayConfig struct {
    KeyID         string `mapstructure:"key_id"`
    KeySecret     string `mapstructure:"key_secret"`
    WebhookSecret string `mapstructure:"webhook_secret"`
}

type SMTPConfig struct {
    Host     string `mapstructure:"host"`
    Port     int    `mapstructure:"port"`
    User     string `mapstructure:"user"`
    Password string `mapstructure:"password"`
    From     string `mapstructure:"from"`
}

type JWTConfig struct {
    Secret string `mapstructure:"secret"`
}

// FrontendConfig 浏览器回跳地址
type FrontendConfig struct {
    PaymentSuccessURL string `mapstructure:"payment_success_url"`
    PaymentFailURL    string `mapstructure:"payment_fail_url"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type OtelConfig struct {
    Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint，空则不启用
}

type CheckoutConfig struct {
    ShippingCharge float64 `mapstructure:"shipping_charge"`
    Currency       string  `mapstructure:"currency"`
}

// Load 读取 config.yaml 并允许 ARISTAYA_* 环境变量覆盖
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "release")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "aristaya.db")
    v.SetDefault("checkout.shipping_charge", 100)
    v.SetDefault("checkout.currency", "INR")
    v.SetDefault("log_level", "info")

    v.SetEnvPrefix("ARISTAYA")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    if err := v.ReadInConfig(); err != nil {
        // 配置文件可选，环境变量足以启动
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
            return nil, err
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
