package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres

	"github.com/Yalishenda/Invoice-Handler/config"
	"github.com/Yalishenda/Invoice-Handler/controllers"
	"github.com/Yalishenda/Invoice-Handler/handler"
	"github.com/Yalishenda/Invoice-Handler/infra/db/dao"
	"github.com/Yalishenda/Invoice-Handler/infra/db/model"
	"github.com/Yalishenda/Invoice-Handler/infra/extractor"
	"github.com/Yalishenda/Invoice-Handler/infra/locker"
	"github.com/Yalishenda/Invoice-Handler/infra/mailbox"
	"github.com/Yalishenda/Invoice-Handler/infra/records"
	"github.com/Yalishenda/Invoice-Handler/middlewares"
	reconciliationUsecase "github.com/Yalishenda/Invoice-Handler/usecase/reconciliation"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
	Router *mux.Router
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

	source, err := mailbox.NewGmailSource(context.Background(), cfg.GmailCredentialsFile)
	if err != nil {
		log.Fatalf("Cannot build mailbox source: %v", err)
	}

	uc := reconciliationUsecase.NewReconciliationUsecase(
		source,
		extractor.NewClient(cfg.ExtractorURL, cfg.ExtractorToken),
		records.NewClient(cfg.RecordsURL, cfg.RecordsToken, cfg.RecordsDatabaseID),
		dao.NewDaoMethod(a.DB),
		locker.New(),
		cfg.SenderFilter,
		cfg.MaxDocuments,
	)
	h := handler.NewReconciliationHandler(uc)

	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(middlewares.SetContentTypeMiddleware)
	controllers.RegisterReconciliationRoutes(a.Router, h)
}

func (a *App) RunServer() {
	log.Printf("\nServer starting on port %v", a.Config.Port)
	log.Fatal(http.ListenAndServe(":"+a.Config.Port, a.Router))
}

func main() {
	app := App{}
	app.Initialize(config.Load())
	app.RunServer()
}
