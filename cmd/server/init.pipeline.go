package main

import (
	"fmt"

	contentsvc "meta_content/internal/api/content/service"
	draftsvc "meta_content/internal/api/draft/service"
	integrationsvc "meta_content/internal/api/integration/service"
	"meta_content/internal/delivery/channels"
	"meta_content/internal/generation"
	"meta_content/internal/global"
	"meta_content/internal/logger"
)

// InitPipeline dựng workflow engine cùng các client outbound (generation,
// Slack). Gọi sau InitRegistry vì các service đọc collection từ registry.
func InitPipeline() (*draftsvc.WorkflowEngine, *channels.SlackClient, *generation.Client, error) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	genClient := generation.NewClient(cfg.GenerationServiceURL, cfg.GenerationServiceKey, cfg.GenerationTimeoutSecs)
	slackClient := channels.NewSlackClient(cfg.SlackAPIBaseURL)

	draftService, err := draftsvc.NewDraftService()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create draft service: %w", err)
	}
	postService, err := contentsvc.NewPostService()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create post service: %w", err)
	}
	scheduleService, err := contentsvc.NewScheduleService()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create schedule service: %w", err)
	}
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create integration service: %w", err)
	}

	engine := draftsvc.NewWorkflowEngine(
		draftService,
		postService,
		scheduleService,
		integrationService,
		genClient,
		slackClient,
		channels.MessageBuilder{},
	)

	log.Info("🧵 [DRAFT] Workflow engine initialized")
	return engine, slackClient, genClient, nil
}
