package bootstrap

import (
	"context"
	"log"

	"lawpro-be/internal/config"
	"lawpro-be/internal/controller"
	"lawpro-be/internal/pkg/logger"
	"lawpro-be/internal/pkg/mailer"
	"lawpro-be/internal/repository/cache"
	"lawpro-be/internal/repository/memory"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/internal/service"
	"lawpro-be/internal/websocket"
	"lawpro-be/pkg/events"
	"lawpro-be/pkg/extract"
	"lawpro-be/pkg/llm/factory"
	"lawpro-be/pkg/render"
	"lawpro-be/pkg/webhook"

	pktNats "lawpro-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	titleTopic          = "TITLE_REQUESTED"
	contactDurableName  = "lawpro-contact-mailer"
	notificationLogPath = "logs/notification.log"
)

type Container struct {
	// Controllers
	BrowserKeyController controller.IBrowserKeyController
	ChatController       controller.IChatController
	LawyerController     controller.ILawyerController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	LawyerService   service.ILawyerService
	NatsSubscriber  *pktNats.Subscriber
	// ContactGate opens once the contact mailer subscription is live.
	ContactGate *events.Gate

	// WebSockets
	WebSocketHandler *websocket.Handler
	WebSocketHub     *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI backends
	llmBaseURL := cfg.Ai.BaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL,
		APIKey:   cfg.Ai.APIKey,
		Timeout:  cfg.Ai.Timeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var responder service.AssistantResponder
	if cfg.Ai.Backend == "webhook" {
		if cfg.Ai.WebhookURL == "" {
			log.Fatalf("[FATAL] AI_BACKEND=webhook needs WEBHOOK_URL")
		}
		responder = service.NewWebhookResponder(webhook.NewClient(cfg.Ai.WebhookURL, cfg.Ai.WebhookTimeout))
		log.Printf("[INFO] Using assistant backend: WEBHOOK")
	} else {
		responder = service.NewLLMResponder(llmProvider)
		log.Printf("[INFO] Using assistant backend: LLM")
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS
	var publisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		publisher = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}
	contactGate := events.NewGate(publisher)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	var lawyerCache cache.LawyerCache
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		lawyerCache = cache.NewRedisLawyerCache(rdb, cfg.Lawyer.CacheTTL)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(notificationLogPath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(titleTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		titleTopic,
		uowFactory,
		llmProvider,
		cfg.Ai.TitleModel,
		wsHub,
	)

	lawyerService := service.NewLawyerService(
		uowFactory,
		lawyerCache,
		emailService,
		contactGate,
		sysLogger,
		cfg.Lawyer.PageSize,
	)

	chatService := service.NewChatService(
		uowFactory,
		responder,
		extract.NewResolver(),
		lawyerService,
		sessionRepo,
		publisherService,
		wsHub,
		publisher,
		render.NewRenderer(),
		sysLogger,
	)

	browserKeyService := service.NewBrowserKeyService(cfg.App.BrowserKeySecret, cfg.App.BrowserKeyTTL)

	// 6. Controllers
	return &Container{
		BrowserKeyController: controller.NewBrowserKeyController(browserKeyService),
		ChatController:       controller.NewChatController(chatService, cfg.App.BrowserKeySecret),
		LawyerController:     controller.NewLawyerController(lawyerService),

		ConsumerService: consumerService,
		LawyerService:   lawyerService,
		NatsSubscriber:  natsSub,
		ContactGate:     contactGate,

		WebSocketHandler: websocket.NewHandler(wsHub, cfg.App.BrowserKeySecret),
		WebSocketHub:     wsHub,

		Logger: sysLogger,
	}
}

// StartBackground runs the title consumer and, when NATS is connected, the
// contact request mailer.
func (c *Container) StartBackground(ctx context.Context) error {
	log.Println("Background: Starting Consumer Service...")
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	var sub contactSubscriber
	if c.NatsSubscriber != nil {
		sub = c.NatsSubscriber
	}
	return startContactMailer(ctx, sub, c.ContactGate, c.LawyerService.HandleContactRequested)
}

type contactSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// startContactMailer subscribes the mailer and only then lets contact
// requests be queued. Until it succeeds they are mailed inline.
func startContactMailer(ctx context.Context, sub contactSubscriber, gate *events.Gate, handler pktNats.EventHandler) error {
	if sub == nil {
		log.Println("[WARN] NATS subscriber unavailable, contact requests are mailed inline")
		return nil
	}
	if err := sub.Subscribe(ctx, events.TypeLawyerContactRequested, contactDurableName, handler); err != nil {
		log.Printf("[WARN] Contact mailer subscription failed, contact requests are mailed inline: %v", err)
		return err
	}
	gate.Open()
	return nil
}
