package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres

	"github.com/Yalishenda/Invoice-Handler/config"
	"github.com/Yalishenda/Invoice-Handler/handler"
	"github.com/Yalishenda/Invoice-Handler/infra/db/dao"
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
	"github.com/Yalishenda/Invoice-Handler/infra/extractor"
	"github.com/Yalishenda/Invoice-Handler/infra/locker"
	"github.com/Yalishenda/Invoice-Handler/infra/mailbox"
	"github.com/Yalishenda/Invoice-Handler/infra/records"
	reconciliationUsecase "github.com/Yalishenda/Invoice-Handler/usecase/reconciliation"
)

type CronWorkerConfig struct {
	Interval time.Duration
	Workers  int
}

func (cfg CronWorkerConfig) startReconcileExecutorWorker(h *handler.ReconciliationHandler, workerID int) {
	for {
		ctx := context.Background()
		err := h.ReconciliationExecution(ctx)
		switch {
		case errors.Is(err, handler.ErrRunInProgress):
			log.Printf("[Worker %d] skipped: %s", workerID, err.Error())
		case err != nil:
			log.Printf("[Worker %d] error: %s", workerID, err.Error())
		default:
			log.Printf("[Worker %d] success", workerID)
		}

		time.Sleep(cfg.Interval)
	}
}

type App struct {
	Config config.Config
	DB     *gorm.DB
	Locker *locker.Locker
}

func (a *App) startCronWorker(cfg CronWorkerConfig) {
	var wg sync.WaitGroup

	source, err := mailbox.NewGmailSource(context.Background(), a.Config.GmailCredentialsFile)
	if err != nil {
		log.Fatalf("Cannot build mailbox source: %v", err)
	}

	reconciliationUc := reconciliationUsecase.NewReconciliationUsecase(
		source,
		extractor.NewClient(a.Config.ExtractorURL, a.Config.ExtractorToken),
		records.NewClient(a.Config.RecordsURL, a.Config.RecordsToken, a.Config.RecordsDatabaseID),
		dao.NewDaoMethod(a.DB),
		a.Locker,
		a.Config.SenderFilter,
		a.Config.MaxDocuments,
	)
	h := handler.NewReconciliationHandler(reconciliationUc)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			log.Printf("spawn [Worker %d]", workerID)
			cfg.startReconcileExecutorWorker(h, workerID)
		}(i + 1)
	}
	wg.Wait()
}

func (a *App) Initialize(cfg config.Config) {
	a.Config = cfg

	var err error
	DBURI := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword)

	a.DB, err = gorm.Open("postgres", DBURI)
	if err != nil {
		log.Fatalf("Cannot connect to database %s: %v", cfg.DBName, err)
	}

	a.DB.AutoMigrate(
		&model.EmailLog{},
		&model.PaymentLog{},
		&model.StatusUpdateLog{},
		&model.SessionLog{},
	) //database migration

	a.Locker = locker.New()
}

func (a *App) RunServer() {
	a.startCronWorker(CronWorkerConfig{
		Workers:  a.Config.Workers,
		Interval: a.Config.WorkerInterval,
	})
}

func main() {
	app := App{}
	app.Initialize(config.Load())
	app.RunServer()
}
