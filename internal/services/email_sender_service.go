package services

import "context"

type EmailSender interface {
	SendLoginLink(ctx context.Context, toEmail, loginURL string) error
}
