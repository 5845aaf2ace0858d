// Command legacyimport copia clientes, serviços e profissionais do projeto
// Supabase antigo para o banco atual. Pode ser rodado mais de uma vez:
// registros com o mesmo id são atualizados.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/handlers"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const pageSize = 500

// ======================================================
// LINHAS DO PROJETO ANTIGO
// ======================================================

type legacyClient struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	BirthDate       *string   `json:"birth_date"`
	Notes           *string   `json:"notes"`
	AcceptsMessages *bool     `json:"accepts_messages"`
}

type legacyService struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Category        *string         `json:"category"`
	Active          *bool           `json:"active"`
}

type legacyProfessional struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Email             *string         `json:"email"`
	Phone             *string         `json:"phone"`
	Specialties       []string        `json:"specialties"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func main() {
	dryRun := flag.Bool("dry-run", false, "só lê e conta, não grava")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required")
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		log.Fatalf("failed to create supabase client: %v", err)
	}

	loc := timezone.Location(cfg.Timezone)

	var db *gorm.DB
	if !*dryRun {
		db = dbpkg.NewDB(cfg)
	}

	// ------------------------------
	// CLIENTS
	// ------------------------------
	var clients []legacyClient
	if err := fetchAll(client, "clients", &clients); err != nil {
		log.Fatalf("fetch clients: %v", err)
	}

	rows := make([]models.Client, 0, len(clients))
	for _, lc := range clients {
		c := models.Client{
			ID:              lc.ID,
			Name:            strings.TrimSpace(lc.Name),
			Phone:           str(lc.Phone),
			Email:           strings.ToLower(str(lc.Email)),
			Notes:           str(lc.Notes),
			AcceptsMessages: boolOr(lc.AcceptsMessages, true),
		}
		if c.Phone != "" {
			if _, ok := messaging.NormalizePhone(c.Phone); !ok {
				log.Printf("client %s: invalid phone %q kept as is", c.ID, c.Phone)
			}
		}
		if bd := str(lc.BirthDate); bd != "" {
			// aceita "YYYY-MM-DD" e timestamps completos
			if len(bd) > len(timezone.DateLayout) {
				bd = bd[:len(timezone.DateLayout)]
			}
			if d, err := timezone.ParseDate(bd, loc); err == nil {
				c.BirthDate = &d
			} else {
				log.Printf("client %s: invalid birth_date %q ignored", c.ID, bd)
			}
		}
		rows = append(rows, c)
	}
	upsert(db, "clients", rows)

	// ------------------------------
	// SERVICES
	// ------------------------------
	var services []legacyService
	if err := fetchAll(client, "services", &services); err != nil {
		log.Fatalf("fetch services: %v", err)
	}

	svcRows := make([]models.Service, 0, len(services))
	for _, ls := range services {
		category := str(ls.Category)
		if category == "" {
			category = handlers.UncategorizedService
		}
		svcRows = append(svcRows, models.Service{
			ID:              ls.ID,
			Name:            strings.TrimSpace(ls.Name),
			Description:     str(ls.Description),
			DurationMinutes: ls.DurationMinutes,
			Price:           ls.Price,
			Category:        category,
			Active:          boolOr(ls.Active, true),
		})
	}
	upsert(db, "services", svcRows)

	// ------------------------------
	// PROFESSIONALS
	// ------------------------------
	var professionals []legacyProfessional
	if err := fetchAll(client, "professionals", &professionals); err != nil {
		log.Fatalf("fetch professionals: %v", err)
	}

	proRows := make([]models.Professional, 0, len(professionals))
	for _, lp := range professionals {
		proRows = append(proRows, models.Professional{
			ID:                lp.ID,
			Name:              strings.TrimSpace(lp.Name),
			Email:             strings.ToLower(str(lp.Email)),
			Phone:             str(lp.Phone),
			Specialties:       pq.StringArray(lp.Specialties),
			CommissionPercent: lp.CommissionPercent,
		})
	}
	upsert(db, "professionals", proRows)

	log.Printf("legacy import done: %d clients, %d services, %d professionals",
		len(rows), len(svcRows), len(proRows))
}

// fetchAll pagina a tabela por id até esgotar.
func fetchAll[T any](client *supa.Client, table string, out *[]T) error {
	for from := 0; ; from += pageSize {
		var page []T
		_, err := client.From(table).
			Select("*", "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, from+pageSize-1, "").
			ExecuteTo(&page)
		if err != nil {
			return err
		}

		*out = append(*out, page...)
		if len(page) < pageSize {
			return nil
		}
	}
}

func upsert[T any](db *gorm.DB, table string, rows []T) {
	if db == nil || len(rows) == 0 {
		log.Printf("%s: %d rows (not written)", table, len(rows))
		return
	}

	start := time.Now()
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(rows, 100).Error
	if err != nil {
		log.Fatalf("upsert %s: %v", table, err)
	}

	log.Printf("%s: %d rows upserted in %s", table, len(rows), time.Since(start).Round(time.Millisecond))
}
