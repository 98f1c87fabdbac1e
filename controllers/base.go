package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
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

	a.Router = mux.NewRouter().StrictSlash(true)
	a.initializeRoutes()
}

func (a *App) buildHandler() *handler.ReconciliationHandler {
	source, err := mailbox.NewGmailSource(context.Background(), a.Config.GmailCredentialsFile)
	if err != nil {
		log.Fatalf("Cannot build mailbox source: %v", err)
	}

	uc := reconciliationUsecase.NewReconciliationUsecase(
		source,
		extractor.NewClient(a.Config.ExtractorURL, a.Config.ExtractorToken),
		records.NewClient(a.Config.RecordsURL, a.Config.RecordsToken, a.Config.RecordsDatabaseID),
		dao.NewDaoMethod(a.DB),
		locker.New(),
		a.Config.SenderFilter,
		a.Config.MaxDocuments,
	)
	return handler.NewReconciliationHandler(uc)
}

func (a *App) initializeRoutes() {
	a.Router.Use(middlewares.SetContentTypeMiddleware)
	RegisterReconciliationRoutes(a.Router, a.buildHandler())
}

func (a *App) RunServer() {
	port := a.Config.Port

	log.Printf("\nServer starting on port %v", port)
	log.Fatal(http.ListenAndServe(":"+port, a.Router))
}
