package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/amm/app/telemetry"
	"github.com/paw-chain/amm/x/amm/types"
)

// execute runs a state change inside an operation span.
func (s *Server) execute(c *gin.Context, operation string, pair types.TradingPair, fn func(ctx sdk.Context) error) error {
	_, span := telemetry.StartOperationSpan(c.Request.Context(), s.tracer, operation, pair.String())
	defer span.End()

	err := s.app.Execute(fn)
	telemetry.RecordError(span, err)
	return err
}

func pairFromPath(c *gin.Context) types.TradingPair {
	return types.NewTradingPair(types.AssetID(c.Param("asset_a")), types.AssetID(c.Param("asset_b")))
}

func (s *Server) handleListPools(c *gin.Context) {
	var pools []types.LiquidityPool
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		pools, err = s.app.AMMKeeper.GetAllPools(ctx)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	if pools == nil {
		pools = []types.LiquidityPool{}
	}
	c.JSON(http.StatusOK, PoolsResponse{Pools: pools, Count: len(pools)})
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	pair := types.NewTradingPair(req.AssetA, req.AssetB)

	var pool types.LiquidityPool
	err := s.execute(c, "create_pool", pair, func(ctx sdk.Context) error {
		var err error
		pool, err = s.app.AMMKeeper.CreatePool(ctx, req.Creator, pair, req.LiquidityToken)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

func (s *Server) handleGetPool(c *gin.Context) {
	pair := pairFromPath(c)

	var pool types.LiquidityPool
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		pool, err = s.app.AMMKeeper.GetPool(ctx, pair)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

func (s *Server) handlePoolByLiquidityToken(c *gin.Context) {
	token := types.AssetID(c.Param("token"))

	var pool types.LiquidityPool
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		pool, err = s.app.AMMKeeper.PoolByLiquidityToken(ctx, token)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

// handleQuoteSwap prices a swap without executing it. asset_out defaults to
// the side of the pair that is not asset_in.
func (s *Server) handleQuoteSwap(c *gin.Context) {
	pair := pairFromPath(c)
	assetIn := types.AssetID(c.Query("asset_in"))
	assetOut := types.AssetID(c.Query("asset_out"))
	if assetOut == "" {
		assetOut = pair.AssetB
		if assetIn == pair.AssetB {
			assetOut = pair.AssetA
		}
	}

	amountIn, err := types.ParseBalance(c.Query("amount_in"))
	if err != nil {
		abortBadRequest(c, err)
		return
	}
	fee, err := types.SwapFee(amountIn)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var out types.Balance
	err = s.app.Query(func(ctx sdk.Context) error {
		var err error
		out, err = s.app.AMMKeeper.QuoteSwap(ctx, pair, assetIn, amountIn, assetOut)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		AssetIn:   assetIn,
		AmountIn:  amountIn,
		AssetOut:  assetOut,
		AmountOut: out,
		Fee:       fee,
	})
}

func (s *Server) handleSpotPrice(c *gin.Context) {
	pair := pairFromPath(c)
	base := types.AssetID(c.DefaultQuery("base", pair.AssetA.String()))
	quote := pair.AssetB
	if base == pair.AssetB {
		quote = pair.AssetA
	}

	var price string
	err := s.app.Query(func(ctx sdk.Context) error {
		p, err := s.app.AMMKeeper.SpotPrice(ctx, pair, base)
		if err != nil {
			return err
		}
		price = p.String()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PriceResponse{Base: base, Quote: quote, Price: price})
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	pair := pairFromPath(c)

	var req AddLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	var resp AddLiquidityResponse
	err := s.execute(c, "add_liquidity", pair, func(ctx sdk.Context) error {
		minted, err := s.app.AMMKeeper.AddLiquidity(ctx, req.Provider, pair, types.NewAmounts(*req.AmountA, *req.AmountB), req.MinLiquidity)
		if err != nil {
			return err
		}
		resp.LiquidityMinted = minted
		resp.Pool, err = s.app.AMMKeeper.GetPool(ctx, pair)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	pair := pairFromPath(c)

	var req RemoveLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	var resp RemoveLiquidityResponse
	err := s.execute(c, "remove_liquidity", pair, func(ctx sdk.Context) error {
		out, err := s.app.AMMKeeper.RemoveLiquidity(ctx, req.Provider, pair, *req.Liquidity, types.NewAmounts(req.MinAmountA, req.MinAmountB))
		if err != nil {
			return err
		}
		resp.AmountA, resp.AmountB = out.AmountA, out.AmountB
		resp.Pool, err = s.app.AMMKeeper.GetPool(ctx, pair)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSwap(c *gin.Context) {
	pair := pairFromPath(c)

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	var resp SwapResponse
	err := s.execute(c, "swap", pair, func(ctx sdk.Context) error {
		out, err := s.app.AMMKeeper.Swap(ctx, req.Trader, pair, req.AssetIn, *req.AmountIn, req.AssetOut, req.MinAmountOut)
		if err != nil {
			return err
		}
		resp.AmountOut = out
		resp.Pool, err = s.app.AMMKeeper.GetPool(ctx, pair)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
