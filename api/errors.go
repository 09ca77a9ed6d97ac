package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paw-chain/amm/app"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
	ledgertypes "github.com/paw-chain/amm/x/ledger/types"
)

// statusFor maps a keeper error to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ammtypes.ErrPoolNotFound):
		return http.StatusNotFound, "POOL_NOT_FOUND"
	case errors.Is(err, ammtypes.ErrPoolAlreadyExists), errors.Is(err, ammtypes.ErrLiquidityTokenInUse):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, ledgertypes.ErrInsufficientFunds):
		return http.StatusBadRequest, "INSUFFICIENT_FUNDS"
	case errors.Is(err, ledgertypes.ErrInvalidAccount), errors.Is(err, ledgertypes.ErrInvalidAsset):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, ledgertypes.ErrSupplyOverflow):
		return http.StatusUnprocessableEntity, "ARITHMETIC"
	case errors.Is(err, app.ErrInvariantBroken):
		return http.StatusInternalServerError, "INVARIANT_BROKEN"
	}

	switch ammtypes.ClassifyError(err) {
	case ammtypes.ClassPrecondition:
		return http.StatusBadRequest, "PRECONDITION"
	case ammtypes.ClassSlippage:
		return http.StatusUnprocessableEntity, "SLIPPAGE"
	case ammtypes.ClassArithmetic:
		return http.StatusUnprocessableEntity, "ARITHMETIC"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: err.Error(),
	})
}

func abortBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request",
		Code:    "INVALID_REQUEST",
		Details: err.Error(),
	})
}
