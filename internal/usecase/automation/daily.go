package automation

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-manager/internal/cache"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type DailyReport struct {
	Date string `json:"date"`
	// AlreadyRan indica que outra instância já executou hoje.
	AlreadyRan bool         `json:"already_ran"`
	Scans      []ScanReport `json:"scans"`
}

// RunScheduled é o disparo do agendador e do cron: com WithDailyLock roda
// uma vez por dia entre instâncias. Se alguma varredura falhar a trava é
// liberada para permitir nova tentativa no mesmo dia.
func (r *Runner) RunScheduled(ctx context.Context, now time.Time) (DailyReport, error) {
	if r.dailyLock == nil {
		return r.RunDaily(ctx, now)
	}

	key := cache.Key("daily", timezone.FormatDate(now.In(r.loc)))
	ok, err := r.dailyLock.Acquire(ctx, key, dailyLockTTL)
	if err != nil {
		log.Println("automation daily lock error:", err)
	} else if !ok {
		return DailyReport{Date: timezone.FormatDate(now.In(r.loc)), AlreadyRan: true}, nil
	}

	report, runErr := r.RunDaily(ctx, now)
	if runErr != nil && ok {
		if err := r.dailyLock.Release(ctx, key); err != nil {
			log.Println("automation daily lock release error:", err)
		}
	}
	return report, runErr
}

// RunDaily executa as três varreduras em paralelo, sem trava diária: rodar
// de novo no mesmo dia reenvia. A falha de uma não interrompe as outras;
// os erros voltam agregados.
func (r *Runner) RunDaily(ctx context.Context, now time.Time) (DailyReport, error) {
	report := DailyReport{Date: timezone.FormatDate(now.In(r.loc))}

	scans := []func(context.Context, time.Time) (ScanReport, error){
		r.Reminder24h,
		r.Birthday,
		r.Overdue30,
	}

	reports := make([]ScanReport, len(scans))
	errs := make([]error, len(scans))

	// sem WithContext: um erro não cancela as demais varreduras
	var g errgroup.Group
	for i, scan := range scans {
		i, scan := i, scan
		g.Go(func() error {
			rep, err := scan(ctx, now)
			if err != nil {
				log.Printf("automation %s error: %v", rep.Scan, err)
				rep.Error = err.Error()
			}
			reports[i] = rep
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	report.Scans = reports
	return report, errors.Join(errs...)
}
