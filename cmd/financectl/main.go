// Command financectl manages the household ledger from the terminal:
// entering payslips, assets and credit cards, and printing the monthly
// snapshots the service derives from them.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/Sekine53629/household-finance/internal/config"
	"github.com/Sekine53629/household-finance/internal/repository"
	"github.com/Sekine53629/household-finance/internal/service"
	"github.com/Sekine53629/household-finance/internal/utils"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "financectl",
		Short:         "Manage the household finance ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAddSalaryCmd(),
		newShowSalaryCmd(),
		newAddAssetCmd(),
		newAddCreditCardCmd(),
		newShowScheduleCmd(),
		newShowCashFlowCmd(),
		newShowBalanceSheetCmd(),
		newRecomputeCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openService wires the same layers the API server uses, minus HTTP.
// The returned close func releases the database connection.
func openService() (*service.Service, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.WarnLevel
	}
	logger.SetLevel(logLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	sqlDB, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	repo := repository.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	svc := service.NewService(repo, logger, cfg)
	return svc, func() { sqlDB.Close() }, nil
}

// monthFlag parses the required --month flag, defaulting to the current
// month when empty.
func monthFlag(value string) (time.Time, error) {
	if value == "" {
		return utils.MonthStart(time.Now().UTC()), nil
	}
	return utils.ParseMonth(value)
}
