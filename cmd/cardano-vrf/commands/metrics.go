package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Finschia/cardano-vrf/privval"
)

const (
	metricsFormatPrometheus = "prometheus"
	metricsFormatJSON       = "json"

	ephemeralKeyID = "ephemeral"
)

// MetricsCmd runs prove/verify rounds and reports the collected metrics.
var MetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Run prove/verify rounds and print the collected metrics",
	Args:  cobra.NoArgs,
	RunE:  runMetrics,
}

func init() {
	MetricsCmd.Flags().String("format", metricsFormatPrometheus, "output format (prometheus | json)")
	MetricsCmd.Flags().Int("iterations", 10, "number of prove/verify rounds")
	MetricsCmd.Flags().String("key_id", "", "stored key to prove with; an in-memory key is used if empty")
	MetricsCmd.Flags().String("listen", "", "after the rounds, serve /metrics on this address until interrupted")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != metricsFormatPrometheus && format != metricsFormatJSON {
		return fmt.Errorf("unknown metrics format %q", format)
	}
	iterations, _ := cmd.Flags().GetInt("iterations")
	if iterations < 0 {
		return fmt.Errorf("--iterations can't be negative")
	}
	keyID, _ := cmd.Flags().GetString("key_id")

	signer, err := metricsSigner(keyID)
	if err != nil {
		return err
	}
	if keyID == "" {
		keyID = ephemeralKeyID
	}
	pk, err := signer.GetPublicKey(keyID)
	if err != nil {
		return err
	}
	verifier := newVerifier(privval.NewVersionedVerifier())

	for i := 0; i < iterations; i++ {
		msg := []byte(fmt.Sprintf("metrics round %d", i))
		proof, err := signer.Prove(keyID, msg)
		if err != nil {
			return err
		}
		if _, err := verifier.Verify(pk, proof, msg); err != nil {
			return err
		}
	}

	var out string
	if format == metricsFormatJSON {
		out, err = metrics.JSON()
	} else {
		out, err = metrics.PrometheusText()
	}
	if err != nil {
		return err
	}
	fmt.Println(out)

	listen, _ := cmd.Flags().GetString("listen")
	if listen == "" && config.Instrumentation.Prometheus {
		listen = config.Instrumentation.PrometheusListenAddr
	}
	if listen == "" {
		return nil
	}
	return serveMetrics(cmd.Context(), listen)
}

func metricsSigner(keyID string) (*privval.InstrumentedSigner, error) {
	if keyID != "" {
		return newSigner()
	}
	suite, err := config.Signer.ProofSuite()
	if err != nil {
		return nil, err
	}
	mock := privval.NewMockSigner(suite)
	signer := privval.NewInstrumentedSigner(mock, operationLogger(), metrics)
	if _, err := signer.GenerateKeypair(ephemeralKeyID); err != nil {
		return nil, err
	}
	return signer, nil
}

func serveMetrics(ctx context.Context, addr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
