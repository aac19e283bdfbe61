package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"ratefeed-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/",
				Handler: PriceHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/price",
				Handler: PriceHandler(serverCtx),
			},
		},
	)
}
