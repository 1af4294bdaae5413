package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitMailer must be called once at startup, after the environment is loaded.
func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendExpiryEmail lists the pantry items about to expire.
func SendExpiryEmail(to string, names []string) error {
	subject := "Pantry items expiring soon"
	body := fmt.Sprintf("These items in your pantry expire soon:\n\n%s\n\nUse them up or update their expiry dates in the app.",
		strings.Join(names, "\n"))
	return sendEmail(to, subject, body)
}

// SendWelcomeEmail greets a freshly registered account.
func SendWelcomeEmail(to string, username string) error {
	subject := "Welcome to your pantry"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Scan a barcode or add your first ingredient to get started.", username)
	return sendEmail(to, subject, body)
}
