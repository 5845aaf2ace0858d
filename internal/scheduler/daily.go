package scheduler

import (
	"context"
	"log"
	"time"
)

// Job recebe o horário local do disparo.
type Job func(ctx context.Context, now time.Time) error

// Daily dispara um job uma vez por dia a partir de hour:minute no fuso loc.
type Daily struct {
	name   string
	hour   int
	minute int
	loc    *time.Location
	job    Job

	interval time.Duration
	lastRun  string
}

func NewDaily(name string, hour, minute int, loc *time.Location, job Job) *Daily {
	if loc == nil {
		loc = time.UTC
	}
	return &Daily{
		name:     name,
		hour:     hour,
		minute:   minute,
		loc:      loc,
		job:      job,
		interval: time.Minute,
	}
}

// Start roda até ctx ser cancelado.
func (d *Daily) Start(ctx context.Context) {
	go func() {
		log.Printf("Scheduler %s started (%02d:%02d %s)", d.name, d.hour, d.minute, d.loc)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Printf("Scheduler %s stopped", d.name)
				return
			case t := <-ticker.C:
				d.tick(ctx, t)
			}
		}
	}()
}

// tick reporta se o job foi disparado.
func (d *Daily) tick(ctx context.Context, t time.Time) bool {
	now := t.In(d.loc)
	day := now.Format("2006-01-02")

	if d.lastRun == day {
		return false
	}
	if now.Hour() < d.hour || (now.Hour() == d.hour && now.Minute() < d.minute) {
		return false
	}

	d.lastRun = day
	log.Printf("Triggering %s [%s]...", d.name, now.Format("15:04"))

	if err := d.job(ctx, now); err != nil {
		log.Printf("Error running %s: %v", d.name, err)
	}
	return true
}
