package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"nft_portal/internal/domain"
	"nft_portal/pkg/contextx"
	"nft_portal/pkg/errcodes"
	"nft_portal/pkg/httpx/reply"
	"nft_portal/pkg/logx"
	"nft_portal/pkg/rest"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// writeError переводит доменные ошибки в HTTP-статусы. Ошибки стакана
// ордеров — это проблемы апстрима, поэтому 502, а не 500; rate limit
// и пустой product_code — ошибки запроса. Всё незнакомое уходит в
// общий обработчик reply.Error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	var status int

	switch appErr.Code {
	case errcodes.InvalidProductCode, errcodes.RateLimited:
		status = http.StatusBadRequest
	case errcodes.ItemNotFound:
		status = http.StatusNotFound
	case errcodes.UpstreamTimeout, errcodes.UpstreamError:
		status = http.StatusBadGateway
	default:
		reply.Error(ctx, w, err)
		return
	}

	logger(ctx).Error("request failed", "status", status, logx.Error(err))

	reply.JSON(ctx, w, status, rest.Error{
		Code:    rest.ErrorCode(appErr.Code.String()),
		Message: appErr.Message,
	})
}

func invalidParam(name string, err error) error {
	msg := fmt.Sprintf("invalid query parameter %q", name)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}

	return failure.NewInvalidArgumentError(msg,
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription(msg),
	)
}
