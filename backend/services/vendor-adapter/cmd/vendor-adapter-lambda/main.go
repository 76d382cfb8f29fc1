package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"vendoradapter/backend/libs/logging"
	"vendoradapter/backend/services/vendor-adapter/internal/app"
	"vendoradapter/backend/services/vendor-adapter/internal/config"
	"vendoradapter/backend/services/vendor-adapter/internal/dispatcher"
	"vendoradapter/backend/services/vendor-adapter/internal/ingest"
	"vendoradapter/backend/services/vendor-adapter/internal/models"
)

type handler struct {
	dispatcher *dispatcher.Dispatcher
	logger     *zap.Logger
}

// handle accepts a direct action request or an SNS event wrapping one.
func (h *handler) handle(ctx context.Context, event json.RawMessage) (models.Envelope, error) {
	req, err := ingest.Decode(event)
	if err != nil {
		h.logger.Warn("event rejected", zap.Error(err))
		return models.Envelope{}, err
	}
	return h.dispatcher.Dispatch(ctx, req)
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadWithoutHTTP()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("vendor-adapter-lambda")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	writer, cleanup, err := app.NewCatalogWriter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init catalog", zap.Error(err))
	}
	defer cleanup()

	h := &handler{dispatcher: app.NewDispatcher(cfg, writer, logger), logger: logger}
	lambda.Start(h.handle)
}
