package privval

import (
	"github.com/Finschia/cardano-vrf/libs/log"
)

// InstrumentedSigner logs every call through an OperationLogger and records
// it in Metrics. Prove feeds the prove counters, every other call the HSM
// counters.
type InstrumentedSigner struct {
	signer  Signer
	logger  *log.OperationLogger
	metrics *Metrics
}

var _ Signer = (*InstrumentedSigner)(nil)

func NewInstrumentedSigner(signer Signer, logger *log.OperationLogger, metrics *Metrics) *InstrumentedSigner {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = log.NewOperationLogger(log.NewNopLogger(), log.LevelError)
	}
	return &InstrumentedSigner{signer: signer, logger: logger, metrics: metrics}
}

// Metrics returns the metrics the signer records into.
func (s *InstrumentedSigner) Metrics() *Metrics {
	return s.metrics
}

func (s *InstrumentedSigner) log(op log.Operation, keyID string, t Timer, err error, msg string) {
	entry := log.NewEntry(log.LevelDebug, op, msg).
		WithDuration(t.Elapsed()).
		WithSuccess(err == nil)
	if keyID != "" {
		entry = entry.WithKeyID(keyID)
	}
	if err != nil {
		entry.Level = log.LevelError
		entry.Message = msg + " failed: " + err.Error()
	}
	s.logger.Log(entry)
}

func (s *InstrumentedSigner) Prove(keyID string, msg []byte) ([]byte, error) {
	t := NewTimer()
	proof, err := s.signer.Prove(keyID, msg)
	s.metrics.RecordProve(t.Elapsed(), err == nil)
	s.log(log.OpProve, keyID, t, err, "prove")
	return proof, err
}

func (s *InstrumentedSigner) GetPublicKey(keyID string) ([]byte, error) {
	t := NewTimer()
	pk, err := s.signer.GetPublicKey(keyID)
	s.metrics.RecordHSMOperation(err == nil)
	s.log(log.OpKeyRetrieval, keyID, t, err, "get public key")
	return pk, err
}

func (s *InstrumentedSigner) GenerateKeypair(keyID string) ([]byte, error) {
	t := NewTimer()
	pk, err := s.signer.GenerateKeypair(keyID)
	s.metrics.RecordHSMOperation(err == nil)
	s.log(log.OpKeyGeneration, keyID, t, err, "generate keypair")
	return pk, err
}

func (s *InstrumentedSigner) DeleteKey(keyID string) error {
	t := NewTimer()
	err := s.signer.DeleteKey(keyID)
	s.metrics.RecordHSMOperation(err == nil)
	s.log(log.OpHSM, keyID, t, err, "delete key")
	return err
}

func (s *InstrumentedSigner) ListKeys() ([]string, error) {
	t := NewTimer()
	keys, err := s.signer.ListKeys()
	s.metrics.RecordHSMOperation(err == nil)
	s.log(log.OpHSM, "", t, err, "list keys")
	return keys, err
}

func (s *InstrumentedSigner) HealthCheck() error {
	t := NewTimer()
	err := s.signer.HealthCheck()
	s.metrics.RecordHSMOperation(err == nil)
	s.log(log.OpHSM, "", t, err, "health check")
	return err
}

// InstrumentedVerifier is the Verifier counterpart of InstrumentedSigner.
// A rejected proof is logged as a warning, not an error.
type InstrumentedVerifier struct {
	verifier Verifier
	logger   *log.OperationLogger
	metrics  *Metrics
}

var _ Verifier = (*InstrumentedVerifier)(nil)

func NewInstrumentedVerifier(verifier Verifier, logger *log.OperationLogger, metrics *Metrics) *InstrumentedVerifier {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = log.NewOperationLogger(log.NewNopLogger(), log.LevelError)
	}
	return &InstrumentedVerifier{verifier: verifier, logger: logger, metrics: metrics}
}

func (v *InstrumentedVerifier) Verify(pk, proof, msg []byte) ([]byte, error) {
	t := NewTimer()
	output, err := v.verifier.Verify(pk, proof, msg)
	elapsed := t.Elapsed()
	v.metrics.RecordVerify(elapsed, err == nil)

	entry := log.NewEntry(log.LevelDebug, log.OpVerify, "verify").
		WithDuration(elapsed).
		WithSuccess(err == nil)
	if err != nil {
		entry.Level = log.LevelWarning
		entry.Message = "verify rejected: " + err.Error()
	}
	v.logger.Log(entry)
	return output, err
}
