package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the SMS gateway. With DryRun (or an empty key) nothing is
// actually sent, which is what local and CI environments use.
type Client struct {
	ApiKey string
	Sender string
	DryRun bool
}

type SendSMSResponse struct {
	Code int `json:"code"`
	Data struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewSMSClient(apiKey, sender string, dryRun bool) *Client {
	return &Client{ApiKey: apiKey, Sender: sender, DryRun: dryRun}
}

func (c *Client) SendSMS(to, text string) (*SendSMSResponse, error) {
	if c.DryRun || c.ApiKey == "" || c.ApiKey == "dry-run" {
		fmt.Printf("[sms][dry-run] to=%s sender=%q text=%q\n", MaskPhone(to), c.Sender, text)
		return &SendSMSResponse{Code: 0}, nil
	}

	apiURL := "https://api.mobizon.kz/service/message/sendsmsmessage"

	form := url.Values{
		"apiKey":    {c.ApiKey},
		"recipient": {to},
		"text":      {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	resp, err := http.PostForm(apiURL, form)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result SendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("sms gateway returned error code: %d", result.Code)
	}
	return &result, nil
}
