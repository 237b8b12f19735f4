package common_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

func TestFeeCap(t *testing.T) {
	tip := big.NewInt(2_000_000_000)
	assert.Equal(t, big.NewInt(22_000_000_000), sfcommon.FeeCap(big.NewInt(10_000_000_000), tip))
	// pre london chains have no base fee
	assert.Equal(t, tip, sfcommon.FeeCap(nil, tip))
}

func TestBigToFloatString(t *testing.T) {
	tests := []struct {
		value    *big.Int
		decimal  uint64
		expected string
	}{
		{big.NewInt(1_500_000_000), 9, "1.5"},
		{big.NewInt(2_000_000_000), 9, "2"},
		{big.NewInt(1100), 3, "1.1"},
		{big.NewInt(0), 9, "0"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, sfcommon.BigToFloatString(tc.value, tc.decimal))
	}
	assert.Equal(t, "0", sfcommon.WeiToGweiString(nil))
}

func TestGweiToWei(t *testing.T) {
	assert.Equal(t, big.NewInt(1_500_000_000), sfcommon.GweiToWei(1.5))
	assert.Equal(t, big.NewInt(12340), sfcommon.FloatToBigInt(1.234, 4))
	assert.Equal(t, big.NewInt(1), sfcommon.GweiToWei(0.000000001))

	huge, ok := new(big.Int).SetString("1000000000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, huge, sfcommon.GweiToWei(1e12))
	assert.Nil(t, sfcommon.GweiToWei(math.Inf(1)))
	assert.Nil(t, sfcommon.GweiToWei(math.NaN()))
}

func TestRunParallel(t *testing.T) {
	err, n := sfcommon.RunParallel(
		func() error { return nil },
		func() error { return errors.New("first") },
		func() error { return errors.New("second") },
	)
	require.Error(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")

	err, n = sfcommon.RunParallel(func() error { return nil })
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestIsHexAddress(t *testing.T) {
	assert.True(t, sfcommon.IsHexAddress("0x7370f36B7eF398B9c5e840c768FA1794eA7cbC37"))
	assert.False(t, sfcommon.IsHexAddress("7370f36B7eF398B9c5e840c768FA1794eA7cbC37"))
	assert.False(t, sfcommon.IsHexAddress("0x7370f36B7eF398B9c5e840c768FA1794eA7cbC"))
	assert.False(t, sfcommon.IsHexAddress("springfield"))
}

func TestTxInfo(t *testing.T) {
	for status, final := range map[string]bool{
		sfcommon.TxStatusDone:     true,
		sfcommon.TxStatusReverted: true,
		sfcommon.TxStatusLost:     true,
		sfcommon.TxStatusPending:  false,
		sfcommon.TxStatusNotFound: false,
		sfcommon.TxStatusError:    false,
	} {
		assert.Equal(t, final, sfcommon.TxInfo{Status: status}.IsFinal(), status)
	}

	info := sfcommon.TxInfo{
		Status: sfcommon.TxStatusDone,
		Receipt: &types.Receipt{
			GasUsed:           21000,
			EffectiveGasPrice: big.NewInt(3),
		},
	}
	assert.Equal(t, big.NewInt(63000), info.GasCost())
	assert.Equal(t, big.NewInt(0), (&sfcommon.TxInfo{}).GasCost())
}
