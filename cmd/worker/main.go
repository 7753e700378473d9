package main

import (
	"go.uber.org/zap"

	"alumniportal/internal/config"
	"alumniportal/internal/mailer"
	"alumniportal/internal/mqhandler"
	"alumniportal/pkg/circuitbreaker"
	"alumniportal/pkg/logger"
	"alumniportal/pkg/mq"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting mail worker...")

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	breaker := circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig())

	otpHandler := mqhandler.NewOTPRequestedHandler(smtpMailer, breaker, log)

	log.Info("Initializing otp consumer", zap.String("queue", "otp.requested.mail.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "otp.requested.mail.q", mq.RoutingKeyOTPRequested, log)
	if err != nil {
		log.Fatal("failed to init otp consumer", zap.Error(err))
	}
	consumer.SetHandler(otpHandler.HandleOTPRequested)

	dlqPublisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init dlq publisher", zap.Error(err))
	}
	defer dlqPublisher.Close()
	if err := consumer.WithDLQ(dlqPublisher); err != nil {
		log.Fatal("failed to set up DLQ", zap.Error(err))
	}
	go func() {
		log.Info("Starting otp consumer")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("otp consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	log.Info("Worker ready to process messages")

	// Keep worker running
	select {}
}
