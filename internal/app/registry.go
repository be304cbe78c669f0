package app

import (
	"github.com/kamepallinandini997/leave-management-poc/internal/config"
	"github.com/kamepallinandini997/leave-management-poc/internal/employee"
	"github.com/kamepallinandini997/leave-management-poc/internal/leave"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/filestore"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	rdb *redis.Client,
	kafkaWriter *kafkago.Writer,
	logger *zap.Logger,
) error {
	onCorrupt, err := filestore.ParseOnCorrupt(cfg.Store.OnCorrupt)
	if err != nil {
		return err
	}
	statusValidation, err := leave.ParseStatusValidation(cfg.Leave.StatusValidation)
	if err != nil {
		return err
	}

	// --- Collections ---
	employeeStore := filestore.NewCollection[employee.Employee](cfg.Store.EmployeePath(), onCorrupt, logger)
	leaveStore := filestore.NewCollection[leave.Leave](cfg.Store.LeavePath(), onCorrupt, logger)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(employeeStore)
	leaveRepo := leave.NewRepository(leaveStore, employeeRepo)

	// --- Publishers ---
	var (
		employeePublisher employee.EventPublisher
		leavePublisher    leave.EventPublisher
	)
	if kafkaWriter != nil {
		employeePublisher = employee.NewKafkaEventPublisher(kafkaWriter)
		leavePublisher = leave.NewKafkaEventPublisher(kafkaWriter)
	}

	// --- Services ---
	employeeService := employee.NewServiceWithPublisher(employeeRepo, employeePublisher, logger)
	leaveService := leave.NewServiceWithOptions(leaveRepo, leave.Options{
		Publisher:        leavePublisher,
		StatusValidation: statusValidation,
	}, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb)
		leave.RegisterRoutes(api, leaveHandler, rdb)
	}

	return nil
}
