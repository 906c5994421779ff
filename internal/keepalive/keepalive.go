// Package keepalive periodically pings the service's own public URL so
// free-tier hosts do not put it to sleep.
package keepalive

import (
	"fmt"
	"time"

	"benta/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Pinger issues GET requests against <baseURL>/api/ping.
type Pinger struct {
	url     string
	timeout time.Duration
}

// NewPinger creates a Pinger for the given backend base URL.
func NewPinger(baseURL string) *Pinger {
	return &Pinger{
		url:     baseURL + "/api/ping",
		timeout: 30 * time.Second,
	}
}

// Ping performs one request and returns the HTTP status code.
func (p *Pinger) Ping() (int, error) {
	agent := fiber.Get(p.url).Timeout(p.timeout)
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, fmt.Errorf("failed to ping %s: %v", p.url, errs[0])
	}
	return code, nil
}

// Run is the cron job body: ping and log, never fail.
func (p *Pinger) Run() {
	code, err := p.Ping()
	if err != nil {
		metrics.RecordKeepAlive("error")
		log.WithError(err).Error("Error pinging service")
		return
	}
	metrics.RecordKeepAlive("ok")
	log.WithFields(log.Fields{
		"url":    p.url,
		"status": code,
	}).Infof("Pinged service at %s", time.Now().Format(time.RFC3339))
}

// Scheduler owns the cron runner that fires the Pinger.
type Scheduler struct {
	cron *cron.Cron
}

// Start schedules pinger every interval and starts the runner.
func Start(pinger *Pinger, interval time.Duration) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddJob(fmt.Sprintf("@every %s", interval), pinger); err != nil {
		return nil, fmt.Errorf("failed to schedule keep-alive: %w", err)
	}
	c.Start()
	log.Printf("Keep alive service started (every %s)", interval)
	return &Scheduler{cron: c}, nil
}

// Stop stops the runner and waits for a running ping to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
