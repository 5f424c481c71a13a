// Package logging provides structured logging handler construction for use
// with [log/slog], adapted for msgforge's CLI and audit subsystems.
//
// It supports JSON and text formats at the usual severity levels. Use
// [NewHandler] to build a handler directly, or use [Config] with CLI
// flag integration via
// [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra]:
//
//	cfg := logging.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A [Publisher] fans out written bytes to multiple subscribers, by
// default dropping a slow subscriber's oldest entry rather than
// blocking the writer; [WithLossless] flips that trade-off for
// subscribers that must never miss an entry. The audit logger uses a
// lossless Publisher to mirror every event to both a JSON-lines sink
// and a human-readable text sink.
package logging
