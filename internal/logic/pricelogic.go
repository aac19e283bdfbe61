package logic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"ratefeed-api/internal/svc"
	"ratefeed-api/internal/types"
	"ratefeed-api/pkg/pricing"
)

type PriceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPriceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PriceLogic {
	return &PriceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Price resolves one job request and returns the response envelope along
// with the HTTP status to write.
func (l *PriceLogic) Price(req *types.JobRequest) (*types.JobResponse, int) {
	l.Infof("received request id=%s data=%+v", req.ID, req.Data)

	jobRunID := req.ID
	if jobRunID == "" {
		jobRunID = uuid.NewString()
	}

	base := firstNonEmpty(req.Data.Base, req.Data.From, req.Data.Coin)
	quote := firstNonEmpty(req.Data.Quote, req.Data.To, req.Data.Market)

	// Existing job compatibility: the legacy usdt/eth job expects the
	// inverted rate without asking for it.
	invert := req.Data.DoInverse ||
		(strings.EqualFold(base, "usdt") && strings.EqualFold(quote, "eth"))

	price, err := l.svcCtx.Resolver.Resolve(l.ctx, pricing.Request{
		Base:     base,
		Quote:    quote,
		Interval: l.svcCtx.Config.Pricing.Interval,
		Strategy: pricing.Strategy(req.Data.Method),
		Invert:   invert,
		Limit:    req.Data.Limit,
	})
	if err != nil {
		l.Errorf("price resolution failed: %v", err)
		return &types.JobResponse{
			JobRunID: jobRunID,
			Status:   "errored",
			Error:    err.Error(),
		}, statusFor(err)
	}

	return &types.JobResponse{
		JobRunID: jobRunID,
		Status:   "200",
		Data:     &types.JobResult{Result: price},
	}, http.StatusOK
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, pricing.ErrNoRateFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
