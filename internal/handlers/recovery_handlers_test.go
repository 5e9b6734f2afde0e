package handlers

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/url"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
)

var (
	withdrawDest   = common.HexToAddress("0xdd")
	withdrawTxHash = common.HexToHash("0xdead")
)

func recoveryRouter(f *handlerFixture, caller common.Address) *gin.Engine {
	h := NewRecoveryHandler(f.common)
	router := gin.New()
	router.Use(actAs(caller))
	router.POST("/recovery/withdraw", h.EmergencyWithdraw)
	router.GET("/recovery/balances", h.GetBalances)
	return router
}

func withdrawRequest() EmergencyWithdrawRequest {
	return EmergencyWithdrawRequest{
		Destination: withdrawDest.Hex(),
		Amount:      "25",
	}
}

func (f *handlerFixture) pauseAgent(t *testing.T) {
	t.Helper()
	require.NoError(t, f.service.Pause(context.Background(), testOwner))
}

func TestEmergencyWithdrawHandler(t *testing.T) {
	t.Run("sweeps the native balance while paused", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		f.native.EXPECT().
			SendValue(gomock.Any(), withdrawDest, big.NewInt(25)).
			Return(&interfaces.ChainReceipt{TxHash: withdrawTxHash}, nil)
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", withdrawRequest())
		require.Equal(t, http.StatusOK, w.Code)

		var resp WithdrawResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, withdrawTxHash.Hex(), resp.TxHash)
		assert.Equal(t, domain.ZeroAddress.Hex(), resp.Token)
		assert.Equal(t, withdrawDest.Hex(), resp.Destination)
		assert.Equal(t, "25", resp.Amount)
	})

	t.Run("sweeps a token balance while paused", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		f.tokens.EXPECT().
			Transfer(gomock.Any(), testFeeToken, withdrawDest, big.NewInt(25)).
			Return(&interfaces.ChainReceipt{TxHash: withdrawTxHash}, nil)
		router := recoveryRouter(f, testOwner)

		req := withdrawRequest()
		req.Token = testFeeToken.Hex()

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp WithdrawResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, testFeeToken.Hex(), resp.Token)
	})

	t.Run("conflicts while the agent is active", func(t *testing.T) {
		f := newHandlerFixture(t)
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", withdrawRequest())
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects a non-owner caller", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		router := recoveryRouter(f, testStranger)

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", withdrawRequest())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects a zero destination", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		router := recoveryRouter(f, testOwner)

		req := withdrawRequest()
		req.Destination = domain.ZeroAddress.Hex()

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects the agent account as destination", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		router := recoveryRouter(f, testOwner)

		req := withdrawRequest()
		req.Destination = testOperator.Hex()

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed amount fails", func(t *testing.T) {
		f := newHandlerFixture(t)
		router := recoveryRouter(f, testOwner)

		req := withdrawRequest()
		req.Amount = "lots"

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps a failed native transfer to a gateway error", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.pauseAgent(t)
		f.native.EXPECT().
			SendValue(gomock.Any(), withdrawDest, big.NewInt(25)).
			Return(nil, errors.New("insufficient funds"))
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodPost, "/recovery/withdraw", withdrawRequest())
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestGetBalancesHandler(t *testing.T) {
	t.Run("reports native and token balances", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.native.EXPECT().
			Balance(gomock.Any(), testOperator).
			Return(big.NewInt(1000), nil)
		f.tokens.EXPECT().
			BalanceOf(gomock.Any(), testFeeToken, testOperator).
			Return(big.NewInt(42), nil)
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodGet, "/recovery/balances?tokens="+url.QueryEscape(testFeeToken.Hex()), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp BalancesResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "1000", resp.Native)
		assert.Equal(t, "42", resp.Tokens[testFeeToken.Hex()])
	})

	t.Run("reports the native balance alone", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.native.EXPECT().
			Balance(gomock.Any(), testOperator).
			Return(big.NewInt(7), nil)
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodGet, "/recovery/balances", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp BalancesResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "7", resp.Native)
		assert.Empty(t, resp.Tokens)
	})

	t.Run("malformed token address fails", func(t *testing.T) {
		f := newHandlerFixture(t)
		router := recoveryRouter(f, testOwner)

		w := performRequest(router, http.MethodGet, "/recovery/balances?tokens=nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
