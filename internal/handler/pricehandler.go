package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"ratefeed-api/internal/logic"
	"ratefeed-api/internal/svc"
	"ratefeed-api/internal/types"
)

// PriceHandler answers job requests with a resolved exchange rate.
func PriceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.JobRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, types.JobResponse{
				JobRunID: req.ID,
				Status:   "errored",
				Error:    err.Error(),
			})
			return
		}

		l := logic.NewPriceLogic(r.Context(), svcCtx)
		resp, status := l.Price(&req)
		httpx.WriteJson(w, status, resp)
	}
}
