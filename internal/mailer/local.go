package mailer

import "log"

// LocalSender logs messages instead of delivering them. Used when SMTP is
// not configured, so a suggestion run never fails on the delivery step.
type LocalSender struct {
	logger *log.Logger
}

func NewLocalSender(logger *log.Logger) *LocalSender {
	if logger == nil {
		logger = log.Default()
	}
	return &LocalSender{logger: logger}
}

func (s *LocalSender) Send(msg Message) error {
	s.logger.Printf("mailer.local: to=%v subject=%q bytes=%d", msg.To, msg.Subject, len(msg.TextBody)+len(msg.HTMLBody))
	return nil
}
