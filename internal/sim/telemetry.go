package sim

import (
	"github.com/roach88/protosim/internal/random"
)

// deviceHashLayout is YYYYmmddHHMMSS.
const deviceHashLayout = "20060102150405"

var (
	whitelistStatuses = []string{"PENDING", "APPROVED", "REJECTED", "PROCESSING"}
	activationStates  = []string{"ACTIVE", "PENDING", "FAILED", "INITIALIZING"}
	regions           = []string{"US-EAST", "EU-WEST", "ASIA-PACIFIC"}
)

// NodeConfig is a synthesized node configuration.
type NodeConfig struct {
	NodeID     string `json:"node_id"`
	Region     string `json:"region"`
	Validators int    `json:"validators"`
}

// ProtectionPayload is a synthesized heartbeat payload.
type ProtectionPayload struct {
	Device    string `json:"device"`
	Timestamp int64  `json:"timestamp"`
	Nonce     int    `json:"nonce"`
}

// Telemetry synthesizes every network-looking value the simulator shows.
// Nothing here touches a network.
type Telemetry struct {
	rng   *random.Provider
	clock Clock
}

// NewTelemetry returns a generator drawing from rng.
func NewTelemetry(rng *random.Provider, clock Clock) *Telemetry {
	return &Telemetry{rng: rng, clock: clock}
}

// DeviceHash returns "device_<timestamp>_<16 hex>".
func (t *Telemetry) DeviceHash() string {
	return "device_" + t.clock.Now().Format(deviceHashLayout) + "_" + t.rng.Hex(16)
}

// WalletAddress returns "0x" followed by 40 hex digits.
func (t *Telemetry) WalletAddress() string {
	return "0x" + t.rng.Hex(40)
}

// NetworkStatus reports a coin-flip reachability result.
func (t *Telemetry) NetworkStatus() bool {
	return t.rng.Index(2) == 1
}

// WhitelistStatus returns a random whitelist status. The address is ignored.
func (t *Telemetry) WhitelistStatus(string) string {
	return random.Pick(t.rng, whitelistStatuses)
}

// ProtectionScore returns a score in [65, 98] with one decimal.
func (t *Telemetry) ProtectionScore() float64 {
	return random.Round1(t.rng.Float(65, 98))
}

// PingLatency returns a latency in milliseconds in [15, 250] with one decimal.
func (t *Telemetry) PingLatency() float64 {
	return random.Round1(t.rng.Float(15, 250))
}

// ActiveValidators returns a validator count in [8, 20].
func (t *Telemetry) ActiveValidators() int {
	return t.rng.Int(8, 20)
}

// NodeConfiguration returns a synthesized node configuration.
func (t *Telemetry) NodeConfiguration() NodeConfig {
	return NodeConfig{
		NodeID:     t.rng.Digits(8),
		Region:     random.Pick(t.rng, regions),
		Validators: t.rng.Int(5, 15),
	}
}

// ProtectionPayload wraps deviceHash with a timestamp and nonce.
func (t *Telemetry) ProtectionPayload(deviceHash string) ProtectionPayload {
	return ProtectionPayload{
		Device:    deviceHash,
		Timestamp: t.clock.Now().Unix(),
		Nonce:     t.rng.Int(100000, 999999),
	}
}

// PingBroadcast returns "ping_" followed by 32 hex digits.
func (t *Telemetry) PingBroadcast() string {
	return "ping_" + t.rng.Hex(32)
}

// ActivationState returns a random protection activation state.
func (t *Telemetry) ActivationState() string {
	return random.Pick(t.rng, activationStates)
}
