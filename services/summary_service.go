package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"barbearia-backend/store"
	"barbearia-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SummaryService sends the owner a closing summary of the day's sales.
type SummaryService struct {
	store  store.TransactionStore
	client *twilio.RestClient
	log    *logrus.Logger
}

func NewSummaryService(txStore store.TransactionStore, log *logrus.Logger) *SummaryService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &SummaryService{
		store: txStore,
		log:   log,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *SummaryService) StartScheduler() {
	c := cron.New()

	// Every day after closing time
	c.AddFunc("0 21 * * *", func() {
		s.SendDailySummary(time.Now())
	})

	c.Start()
	s.log.Info("daily summary scheduler started")
}

// SendDailySummary totals the given day's sales and notifies the owner.
func (s *SummaryService) SendDailySummary(day time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := utils.BeginningOfDay(day)
	end := utils.EndOfDay(day)

	page, err := s.store.QueryRange(ctx, start, end, store.QueryOptions{})
	if err != nil {
		s.log.WithError(err).Error("daily summary: failed to fetch transactions")
		return
	}

	summary := Summarize(page.Items)
	s.log.WithFields(logrus.Fields{
		"date":       start.Format("2006-01-02"),
		"count":      summary.Count,
		"gross":      summary.Gross.StringFixed(2),
		"commission": summary.Commission.StringFixed(2),
		"house":      summary.House.StringFixed(2),
	}).Info("daily summary")

	ownerPhone := os.Getenv("OWNER_PHONE")
	if ownerPhone == "" {
		return
	}

	message := fmt.Sprintf(
		"Fechamento %s: %d atendimentos, faturamento R$ %s, comissões R$ %s, casa R$ %s",
		start.Format("02/01"),
		summary.Count,
		formatBRL(summary.Gross),
		formatBRL(summary.Commission),
		formatBRL(summary.House),
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)
	if whatsapp := os.Getenv("TWILIO_WHATSAPP_NUMBER"); whatsapp != "" {
		params.SetTo("whatsapp:" + ownerPhone)
		params.SetFrom("whatsapp:" + whatsapp)
	} else {
		params.SetTo(ownerPhone)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.log.WithError(err).Error("daily summary: failed to send message")
		return
	}
	if resp.Sid != nil {
		s.log.WithField("sid", *resp.Sid).Info("daily summary sent")
	}
}
