package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/EstebanGomezT/casa-del-churro/infrastructure/database/sqlite"
	"github.com/EstebanGomezT/casa-del-churro/infrastructure/filestore"
	"github.com/EstebanGomezT/casa-del-churro/infrastructure/repository"
	"github.com/EstebanGomezT/casa-del-churro/internal/api"
	"github.com/EstebanGomezT/casa-del-churro/internal/config"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/reporting"
	"github.com/EstebanGomezT/casa-del-churro/internal/usecases/selling"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nivel de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := sqliteConn(ctx, cfg.Database)
	defer conn.Close()

	saleRepo := repository.NewSaleRepository(conn)
	if err := saleRepo.InitSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("Error al inicializar el esquema")
	}

	store, err := filestore.New(cfg.Storage)
	if err != nil {
		logrus.WithError(err).Fatal("Error al preparar los directorios de almacenamiento")
	}

	saleService := selling.NewService(saleRepo)
	reportService := reporting.NewService(saleRepo, store)

	server, err := api.New(cfg, saleService, reportService, store)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// sqliteConn abre la base de datos y verifica la conexión
func sqliteConn(ctx context.Context, dbConfig config.Database) *sqlite.Connection {
	conn, err := sqlite.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Error al abrir la base de datos")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Error al verificar la base de datos")
	}

	logrus.WithField("path", dbConfig.Path).Info("Base de datos SQLite abierta")
	return conn
}
