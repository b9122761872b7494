package provider

import (
	"github.com/bec-billdesk/internal/cache"
	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/queue"
	"github.com/bec-billdesk/internal/repository"
	"github.com/bec-billdesk/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	PaymentRepo repository.PaymentRepository
	StudentRepo repository.StudentRepository

	// Services
	PaymentService *service.PaymentService
	LookupService  *service.LookupService
	FeeService     *service.FeeService
	ReceiptService *service.ReceiptService
}

// NewContainer wires the application graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.StudentRepo = repository.NewStudentRepository(db)
}

func (c *Container) initServices() {
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.StudentRepo, c.QueueClient, c.Config.Institution)
	c.LookupService = service.NewLookupService(c.PaymentRepo, c.StudentRepo)
	c.FeeService = service.NewFeeService(c.StudentRepo)
	c.ReceiptService = service.NewReceiptService(c.PaymentRepo, c.StudentRepo, c.Config.Institution)
}
