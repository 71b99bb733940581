package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"tracking/cmd"
	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/kafka"
	"tracking/internal/adapters/out/postgres/checkpointrepo"
	"tracking/internal/adapters/out/postgres/orderrepo"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := createGormDB(configs)
	classifier := createClassifier(configs)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var publisher ports.OrderEventPublisher
	if configs.KafkaHost != "" {
		kafkaPublisher := kafka.NewOrderStatusPublisher([]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		classifier,
		publisher,
		logger,
	)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                  goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic:     goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		SweepIntervalMinutes:       goDotEnvIntVariable("SWEEP_INTERVAL_MINUTES"),
		SeverityYellowAfterMinutes: goDotEnvIntVariable("SEVERITY_YELLOW_AFTER_MINUTES"),
		SeverityRedAfterMinutes:    goDotEnvIntVariable("SEVERITY_RED_AFTER_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func createGormDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &checkpointrepo.CheckpointDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func createClassifier(configs cmd.Config) services.StalenessClassifier {
	if configs.SeverityYellowAfterMinutes == 0 && configs.SeverityRedAfterMinutes == 0 {
		return services.NewStalenessClassifier()
	}

	classifier, err := services.NewStalenessClassifierWithThresholds(
		time.Duration(configs.SeverityYellowAfterMinutes)*time.Minute,
		time.Duration(configs.SeverityRedAfterMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatalf("Error configuring severity thresholds: %v", err)
	}
	return classifier
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateUpdateOrderCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateAddCheckpointCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderCheckpointsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
