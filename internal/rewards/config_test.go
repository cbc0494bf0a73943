package rewards

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/rewards/internal/tensor"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, cfg.Discount)
	assert.False(t, cfg.Normalize)
	assert.Nil(t, cfg.DType)
	assert.Equal(t, 1, cfg.TensorRank)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	for _, d := range []float64{1, 0.5, 1e-12} {
		assert.NoError(t, Config{Discount: d}.Validate(), "discount %v", d)
	}
	for _, d := range []float64{0, -0.5, 1.0000001, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, Config{Discount: d}.Validate(), ErrInvalidDiscount, "discount %v", d)
	}
}

func TestConfigTensorRankDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, Config{}.tensorRank())
	assert.Equal(t, 2, Config{TensorRank: 2}.tensorRank())
}

func TestConfigFromYAML(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("discount: 0.99\nnormalize: true\ndtype: float64\ntensor_rank: 2\n"), &cfg)
	require.NoError(t, err)

	require.NotNil(t, cfg.DType)
	assert.Equal(t, tensor.Float64, *cfg.DType)
	assert.Equal(t, Config{Discount: 0.99, Normalize: true, DType: cfg.DType, TensorRank: 2}, cfg)
}

func TestConfigRejectsUnknownDType(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("dtype: complex128\n"), &cfg)
	assert.ErrorIs(t, err, tensor.ErrUnknownDataType)
}
