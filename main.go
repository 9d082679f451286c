package main

import (
	stdlog "log"
	"os"

	"github.com/username/paybook/src/commands"
	"github.com/username/paybook/src/config"
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/logger"
	"github.com/username/paybook/src/parsers"
	"github.com/username/paybook/src/processors"
	"github.com/username/paybook/src/services"
	"github.com/username/paybook/src/utils"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("paybook starting...")

	amounts, err := utils.NewAmountConverter(config.Cfg.NumericLocale)
	if err != nil {
		logger.L.Error("Invalid NUMERIC_LOCALE configuration", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	store, err := database.InitDB(config.Cfg.DatabasePath)
	if err != nil {
		logger.L.Error("Failed to initialize database", "error", err)
		stdlog.Fatalf("failed to initialize database: %v", err)
	}
	defer store.DB().Close()

	parser, err := parsers.GetParser("paypal")
	if err != nil {
		logger.L.Error("Failed to build parser", "error", err)
		os.Exit(1)
	}

	importService := services.NewImportService(
		store,
		parser,
		processors.NewCountryProcessor(),
		processors.NewCustomerProcessor(),
		processors.NewVendorProcessor(),
		processors.NewSaleProcessor(amounts),
		processors.NewPurchaseProcessor(amounts),
		commands.ConsoleNotifier{},
	)

	root := commands.NewRootCommand(&commands.Deps{
		Store:    store,
		Importer: importService,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
