package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/amm/x/amm/types"
)

func (s *Server) handleGetBalance(c *gin.Context) {
	account := c.Param("account")
	asset := types.AssetID(c.Param("asset"))

	var amount types.Balance
	err := s.app.Query(func(ctx sdk.Context) error {
		amount = s.app.LedgerKeeper.GetBalance(ctx, account, asset)
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Account: account, Asset: asset, Amount: amount})
}

func (s *Server) handleFaucet(c *gin.Context) {
	var req FaucetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	var resp BalanceResponse
	err := s.app.Execute(func(ctx sdk.Context) error {
		if err := s.app.LedgerKeeper.Fund(ctx, req.Account, req.Asset, *req.Amount); err != nil {
			return err
		}
		resp = BalanceResponse{
			Account: req.Account,
			Asset:   req.Asset,
			Amount:  s.app.LedgerKeeper.GetBalance(ctx, req.Account, req.Asset),
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
