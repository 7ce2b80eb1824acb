package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-server/internal/platform/timeutil"
)

// Register wires the liveness route into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Report liveness and process uptime",
	}, getHandler)
}

func getHandler(context.Context, *struct{}) (*GetOutput, error) {
	return &GetOutput{Body: Data{Status: StatusOK, Uptime: timeutil.Uptime()}}, nil
}
