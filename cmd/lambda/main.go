package main

import (
	"context"
	"factorlab/cmd"
	"factorlab/internal/config"
	"factorlab/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

type lambdaHandler struct {
	ginLambda *ginadapter.GinLambda
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.FromContext(ctx).Infow("lambda request", "method", req.HTTPMethod, "path", req.Path)
	return m.ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	log := logger.New()

	cfg, err := config.LoadSecrets()
	if err != nil {
		log.Fatal(err)
	}

	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	// the db pool lives as long as the lambda container
	defer deps.Close()

	// build the router once per container, not per invocation
	handler := lambdaHandler{
		ginLambda: ginadapter.New(deps.ApiHandler.NewRouter()),
	}
	lambda.Start(handler.Handler)
}
