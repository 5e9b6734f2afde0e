package chain

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func TestLicensingModuleABI(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(licensingModuleABI))
	require.NoError(t, err)

	t.Run("method selectors match the collaborator signatures", func(t *testing.T) {
		quote, ok := parsed.Methods["predictMintingFee"]
		require.True(t, ok)
		assert.Equal(t, selector("predictMintingFee(address,address,uint256,uint256,address,bytes)"), quote.ID)

		register, ok := parsed.Methods["registerDerivative"]
		require.True(t, ok)
		assert.Equal(t, selector("registerDerivative(address,address[],uint256[],address,bytes,uint256,uint32,uint32)"), register.ID)
	})

	t.Run("quote outputs round-trip", func(t *testing.T) {
		outputs := parsed.Methods["predictMintingFee"].Outputs

		packed, err := outputs.Pack(common.HexToAddress("0x7"), big.NewInt(10))
		require.NoError(t, err)

		values, err := parsed.Unpack("predictMintingFee", packed)
		require.NoError(t, err)
		require.Len(t, values, 2)
		assert.Equal(t, common.HexToAddress("0x7"), values[0].(common.Address))
		assert.Zero(t, big.NewInt(10).Cmp(values[1].(*big.Int)))
	})

	t.Run("registration call packs single-element lists", func(t *testing.T) {
		data, err := parsed.Pack("registerDerivative",
			common.HexToAddress("0x4"),
			[]common.Address{common.HexToAddress("0x3")},
			[]*big.Int{big.NewInt(1)},
			common.HexToAddress("0x5"),
			[]byte{},
			big.NewInt(0),
			uint32(0),
			uint32(0),
		)
		require.NoError(t, err)
		assert.Equal(t, selector("registerDerivative(address,address[],uint256[],address,bytes,uint256,uint32,uint32)"), data[:4])
	})
}

func TestERC20ABI(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	require.NoError(t, err)

	signatures := map[string]string{
		"transferFrom":      "transferFrom(address,address,uint256)",
		"increaseAllowance": "increaseAllowance(address,uint256)",
		"approve":           "approve(address,uint256)",
		"transfer":          "transfer(address,uint256)",
		"allowance":         "allowance(address,address)",
		"balanceOf":         "balanceOf(address)",
	}

	for name, signature := range signatures {
		method, ok := parsed.Methods[name]
		require.True(t, ok, "method %s missing", name)
		assert.Equal(t, selector(signature), method.ID, "selector mismatch for %s", name)
	}

	t.Run("amount outputs round-trip", func(t *testing.T) {
		outputs := parsed.Methods["allowance"].Outputs

		packed, err := outputs.Pack(big.NewInt(42))
		require.NoError(t, err)

		values, err := parsed.Unpack("allowance", packed)
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Zero(t, big.NewInt(42).Cmp(values[0].(*big.Int)))
	})
}
