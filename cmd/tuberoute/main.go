// Command tuberoute routes the port connections of a YAML job and prints
// the resulting layout as YAML.
//
// Usage:
//
//	tuberoute -config job.yaml [-out layout.yaml]
//
// LOG_LEVEL and LOG_FORMAT (read from the environment or a .env file)
// control diagnostics on stderr. The exit status is 1 when any connection
// failed and 2 when the job could not be loaded.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/tubelath/config"
	"github.com/katalvlaran/tubelath/gateway"
	"github.com/katalvlaran/tubelath/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()

	path := flag.String("config", "", "path to the YAML job")
	out := flag.String("out", "", "write the layout here instead of stdout")
	flag.Parse()
	if *path == "" {
		fmt.Fprintln(os.Stderr, "tuberoute: -config is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*path)
	if err != nil {
		l.Error("config_load_error", "path", *path, "err", err)
		os.Exit(2)
	}

	failed, err := routeTo(*out, cfg, l)
	if err != nil {
		l.Error("run_error", "err", err)
		os.Exit(2)
	}
	if failed > 0 {
		l.Warn("connections_failed", "count", failed)
		os.Exit(1)
	}
}

// routeTo runs cfg and writes the layout to the file at path, or stdout when
// path is empty. The file is closed before returning, and a failed close is
// reported as an error.
func routeTo(path string, cfg *config.Config, l *slog.Logger) (failed int, err error) {
	if path == "" {
		return run(cfg, os.Stdout, l)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("opening output: %w", err)
	}
	failed, err = run(cfg, f, l)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}

	return failed, err
}

// run routes every connection of cfg and writes the layout to w. It returns
// the number of failed connections.
func run(cfg *config.Config, w io.Writer, l *slog.Logger) (int, error) {
	ps, err := gateway.New(cfg.GatewayConfig(l))
	if err != nil {
		return 0, err
	}

	failed := 0
	for i, conn := range cfg.Connections {
		from, to := conn.Ends()
		if _, err := ps.ConnectPorts(from, to); err != nil {
			failed++
			l.Debug("connection_skipped", "index", i, "err", err)
		}
	}
	l.Info("job_routed", "connections", len(cfg.Connections), "failed", failed)

	data, err := render(ps)
	if err != nil {
		return failed, err
	}
	if _, err := w.Write(data); err != nil {
		return failed, fmt.Errorf("writing layout: %w", err)
	}

	return failed, nil
}
