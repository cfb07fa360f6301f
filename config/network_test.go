package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkPreset_Known(t *testing.T) {
	preset := NetworkPreset("PULSAR")
	require.NotNil(t, preset)
	assert.Equal(t, "pulsar-3", preset.ChainID)
}

func TestNetworkPreset_UnknownFallsBackToLocal(t *testing.T) {
	preset := NetworkPreset("does-not-exist")
	require.NotNil(t, preset)
	assert.Equal(t, NetworkPresets["localsecret"].ChainID, preset.ChainID)
}

func TestNetworkPreset_ReturnsCopy(t *testing.T) {
	preset := NetworkPreset("mainnet")
	preset.ChainID = "mutated"
	assert.Equal(t, "secret-4", NetworkPresets["mainnet"].ChainID)
}

func TestNetworkConfig_Validate(t *testing.T) {
	n := &NetworkConfig{LCDEndpoint: "https://lcd.example.com", ChainID: "secret-4", BroadcastMode: "block"}
	assert.NoError(t, n.Validate())

	n.BroadcastMode = "bogus"
	assert.Error(t, n.Validate())

	n.BroadcastMode = "block"
	n.ChainID = ""
	assert.Error(t, n.Validate())

	n.ChainID = "secret-4"
	n.LCDEndpoint = ""
	assert.Error(t, n.Validate())
}

func TestNetworkConfig_IsLocal(t *testing.T) {
	n := &NetworkConfig{LCDEndpoint: "http://localhost:1317"}
	assert.True(t, n.IsLocal())

	n.LCDEndpoint = "https://lcd.mainnet.secretsaturn.net"
	assert.False(t, n.IsLocal())
}
