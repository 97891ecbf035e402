package services

import (
	"fmt"
	"log"

	"gomart/internal/utils"
)

type SMSService interface {
	SendVerificationSMS(phone, code string) error
}

type smsService struct {
	client *utils.Client
}

func NewSMSService(client *utils.Client) SMSService {
	return &smsService{client: client}
}

func (s *smsService) SendVerificationSMS(phone, code string) error {
	text := fmt.Sprintf("GoMart verification code: %s", code)
	resp, err := s.client.SendSMS(phone, text)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	log.Printf("[sms][send] ok phone=%s messageID=%s", utils.MaskPhone(phone), resp.Data.MessageID)
	return nil
}
