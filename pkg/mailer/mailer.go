package mailer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/davidmodfyi/feather-api/pkg/config"
	"github.com/davidmodfyi/feather-api/pkg/report"

	mail "github.com/wneessen/go-mail"
)

// Mailer 订单报表投递接口
type Mailer interface {
	SendOrderReport(ctx context.Context, rep *report.OrderReport) error
}

// SMTPMailer 通过SMTP把CSV报表作为附件发给固定的运营邮箱
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	operator string
	timeout  time.Duration
}

// NewSMTPMailer 创建SMTP投递器
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		operator: cfg.Operator,
		timeout:  timeout,
	}
}

// SendOrderReport 发送订单报表，超时受配置约束
func (m *SMTPMailer) SendOrderReport(ctx context.Context, rep *report.OrderReport) error {
	data, err := rep.CSV()
	if err != nil {
		return fmt.Errorf("build order report: %v", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %v", err)
	}
	if err := msg.To(m.operator); err != nil {
		return fmt.Errorf("invalid operator address: %v", err)
	}

	msg.Subject(fmt.Sprintf("New order #%d from %s", rep.OrderID, rep.CustomerName))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Order #%d submitted by %s (%s) on %s.\nTotal amount: %.2f\n\nLine items are attached as CSV.",
		rep.OrderID, rep.CustomerName, rep.CustomerEmail,
		rep.OrderDate.Format("2006-01-02"), rep.TotalAmount()))

	if err := msg.AttachReader(rep.Filename(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("attach order report: %v", err)
	}

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTimeout(m.timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %v", err)
	}

	// 发送受超时上下文约束，失败由调用方按通知失败策略处理
	sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return client.DialAndSendWithContext(sendCtx, msg)
}
