// Lambda entrypoint for eipreaper. Discovery region comes from the
// runtime's AWS_REGION; all policy configuration is environment-driven,
// with the invocation payload able to override dry_run.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/finopslab/eipreaper/handler"
	awsprovider "github.com/finopslab/eipreaper/providers/aws"
	"github.com/finopslab/eipreaper/telemetry"
)

func main() {
	ctx := context.Background()

	region := os.Getenv("AWS_REGION")
	provider, err := awsprovider.New(ctx, region)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create aws provider")
	}

	h := handler.New(provider, telemetry.NewLogger("eipreaper"), telemetry.NewEMFEmitter())
	lambda.Start(h.Handle)
}
