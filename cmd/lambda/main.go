//go:build lambda
// +build lambda

package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/gregsantos/ip-derivative-agent/docs" // generated swagger docs
	"github.com/gregsantos/ip-derivative-agent/internal/helpers"
	"github.com/gregsantos/ip-derivative-agent/internal/logger"
	"github.com/gregsantos/ip-derivative-agent/internal/server"
)

var ginLambda *ginadapter.GinLambda

func init() {
	stage := os.Getenv("STAGE")
	if !helpers.IsValidStage(stage) {
		stage = helpers.StageProd
	}
	logger.InitLogger(stage)

	// Initialize your Gin router
	r := gin.Default()

	// Initialize Handlers
	server.InitializeHandlers()

	// Initialize routes
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.Any("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
