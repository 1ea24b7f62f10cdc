package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dionysus-app/user-api/internal/app"
)

func main() {

	ctx := context.Background()
	a, err := app.NewApp(ctx)

	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	lambda.Start(a.Handle)
}
