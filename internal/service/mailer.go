package service

import (
    "fmt"
    "io"

    gomail "gopkg.in/gomail.v2"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/config"
)

// Mailer 回执邮件出口。管线视角纯 fire-and-forget，失败只记日志。
type Mailer interface {
    Send(to, subject, html string, attachment []byte, filename string) error
}

type smtpMailer struct {
    cfg config.SMTPConfig
}

// NewMailer 基于 SMTP 的邮件实现
func NewMailer(cfg config.SMTPConfig) Mailer { return &smtpMailer{cfg: cfg} }

func (m *smtpMailer) Send(to, subject, html string, attachment []byte, filename string) error {
    msg := gomail.NewMessage()
    msg.SetHeader("From", m.cfg.From)
    msg.SetHeader("To", to)
    msg.SetHeader("Subject", subject)
    msg.SetBody("text/html", html)
    if len(attachment) > 0 {
        msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
            _, err := w.Write(attachment)
            return err
        }))
    }
    dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
    if err := dialer.DialAndSend(msg); err != nil {
        return fmt.Errorf("send mail to %s: %w", to, err)
    }
    return nil
}
