package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Services treat a
// nil *Metrics as disabled, so tests can pass nil without registering
// collectors.
type Metrics struct {
	DidAssociations        prometheus.Counter
	CredentialsIssued      *prometheus.CounterVec
	CredentialsReEncrypted *prometheus.CounterVec
	CredentialsRevoked     *prometheus.CounterVec
	TokenRotations         *prometheus.CounterVec
	GatewayLatency         *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DidAssociations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kyc_gateway_did_associations_total",
			Help: "Total number of completed user DID associations",
		}),
		CredentialsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_credentials_issued_total",
			Help: "Total credentials issued, by issuer role and credential type",
		}, []string{"issuer_role", "credential_type"}),
		CredentialsReEncrypted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_credentials_reencrypted_total",
			Help: "Total credentials fulfilled by re-encryption, by issuer role",
		}, []string{"issuer_role"}),
		CredentialsRevoked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_credential_revocations_total",
			Help: "Total revoke-all-credentials calls, by issuer role",
		}, []string{"issuer_role"}),
		TokenRotations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_gateway_issuer_token_rotations_total",
			Help: "Total persisted issuer auth token rotations, by issuer role",
		}, []string{"issuer_role"}),
		GatewayLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kyc_gateway_saas_request_duration_seconds",
			Help:    "Latency of credential-issuance SaaS calls, by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) ObserveDidAssociation() {
	if m == nil {
		return
	}
	m.DidAssociations.Inc()
}

func (m *Metrics) ObserveIssued(issuerRole, credentialType string) {
	if m == nil {
		return
	}
	m.CredentialsIssued.WithLabelValues(issuerRole, credentialType).Inc()
}

func (m *Metrics) ObserveReEncrypted(issuerRole string, count int) {
	if m == nil {
		return
	}
	m.CredentialsReEncrypted.WithLabelValues(issuerRole).Add(float64(count))
}

func (m *Metrics) ObserveRevocation(issuerRole string) {
	if m == nil {
		return
	}
	m.CredentialsRevoked.WithLabelValues(issuerRole).Inc()
}

func (m *Metrics) ObserveTokenRotation(issuerRole string) {
	if m == nil {
		return
	}
	m.TokenRotations.WithLabelValues(issuerRole).Inc()
}

func (m *Metrics) ObserveGatewayLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.GatewayLatency.WithLabelValues(operation).Observe(seconds)
}
