package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-server/internal/platform/logging"
	"github.com/janisto/hello-server/internal/platform/timeutil"
)

// Register wires the greeting route into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greet the caller with the current server time",
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "greeting", zap.String("path", "/"))
	return &GetOutput{Body: Data{Message: Message, Timestamp: timeutil.Now()}}, nil
}
