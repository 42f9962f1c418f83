package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/server"
	"github.com/theirongolddev/ada/internal/store"
)

type serverRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	Backend   string    `json:"backend"`
}

var (
	flagServeAddr    string
	flagServeDetach  bool
	flagServePIDFile string
	flagServeLogFile string
	flagServeChild   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advisor HTTP service (POST /ask)",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server process and API status",
	RunE:  runServeStatus,
}

var serveHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent /ask exchanges",
	RunE:  runServeHistory,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	RunE:  runServeStop,
}

func init() {
	runDir := filepath.Dir(store.DefaultPath())
	defaultPID := filepath.Join(runDir, "ada-serve.pid")
	defaultLog := filepath.Join(runDir, "ada-serve.log")

	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", defaultPID, "PID file path")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", defaultLog, "Log file path for detached mode")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the server as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd)
	serveCmd.AddCommand(serveHistoryCmd)
	serveCmd.AddCommand(serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	cfg, err := loadConfig()
	if err != nil {
		return "127.0.0.1:8000"
	}
	return cfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid server launch mode")
	}

	if flagServeDetach {
		return startServerDetached()
	}

	return runServerForeground()
}

func startServerDetached() error {
	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagServeLogFile), 0o750); err != nil {
		return fmt.Errorf("create server log directory: %w", err)
	}

	//nolint:gosec // server log path is configured by the local user
	logf, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open server log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached server: %w", err)
	}

	addr := serveAddr()
	fmt.Printf("  Started server (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagServePIDFile)
	fmt.Printf("  API: http://%s/ask\n", addr)
	fmt.Printf("  Log: %s\n", flagServeLogFile)
	return nil
}

func runServerForeground() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagServeAddr != "" {
		cfg.Server.Addr = flagServeAddr
	}

	// Refuse to start without a key rather than fail every request.
	local, modelID, cleanup, err := newLocalAdvisor(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagServePIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagServePIDFile) }()

	state := serverRuntimeState{
		PID:       pid,
		Addr:      cfg.Server.Addr,
		StartedAt: time.Now(),
		Backend:   modelID,
	}
	_ = writeState(statePath(flagServePIDFile), state)
	defer func() { _ = os.Remove(statePath(flagServePIDFile)) }()

	svc := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HistorySize:    cfg.Server.HistorySize,
		Timeout:        cfg.Timeout(),
		Backend:        modelID,
	}, local)

	fmt.Printf("  ada advisor listening on http://%s/ask\n", cfg.Server.Addr)
	fmt.Printf("  Model: %s\n", modelID)
	fmt.Printf("  Stop with: ada serve stop --pid-file %s\n", flagServePIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runningAddr returns the address of the live server recorded in the state file.
func runningAddr() string {
	if st, err := readState(statePath(flagServePIDFile)); err == nil && st.Addr != "" {
		return st.Addr
	}
	return serveAddr()
}

// getJSON fetches url and decodes the body into v.
func getJSON(url string, v any) error {
	code, body, err := fasthttp.GetTimeout(nil, url, 2*time.Second)
	if err != nil {
		return fmt.Errorf("unreachable (%w)", err)
	}
	if code != fasthttp.StatusOK {
		return fmt.Errorf("HTTP %d", code)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed response (%w)", err)
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		fmt.Printf("  Server: not running (pid file not found)\n")
		return nil
	}

	alive := processAlive(pid)
	if !alive {
		fmt.Printf("  Server: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := runningAddr()
	fmt.Printf("  Server PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	var st server.Status
	if err := getJSON("http://"+addr+"/v1/status", &st); err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}

	fmt.Printf("  Up since: %s (%s)\n", st.StartedAt.Local().Format(time.RFC3339),
		cli.FormatDuration(int64(time.Since(st.StartedAt).Seconds())))
	if st.Backend != "" {
		fmt.Printf("  Model: %s\n", st.Backend)
	}
	fmt.Printf("  Requests: %d (%d failed, %d cached)\n", st.Requests, st.Failures, st.CacheHits)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runServeHistory(_ *cobra.Command, _ []string) error {
	addr := runningAddr()
	var history []server.Exchange
	if err := getJSON("http://"+addr+"/v1/history", &history); err != nil {
		return fmt.Errorf("server at %s: %w", addr, err)
	}
	if len(history) == 0 {
		fmt.Println("  No requests yet.")
		return nil
	}

	rows := make([][]string, 0, len(history))
	for _, ex := range history {
		cached := ""
		if ex.Cached {
			cached = "yes"
		}
		rows = append(rows, []string{
			ex.At.Local().Format("15:04:05"),
			ex.Mode,
			strconv.Itoa(ex.Status),
			strconv.FormatInt(ex.DurationMs, 10) + "ms",
			cached,
			ex.Outcome,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent requests",
		Headers: []string{"Time", "Mode", "Status", "Took", "Cached", "Outcome"},
		Rows:    rows,
	}))
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		return errors.New("server is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find server process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal server process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagServePIDFile)
			_ = os.Remove(statePath(flagServePIDFile))
			fmt.Printf("  Stopped server (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("server (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureServerNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("server already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // server pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st serverRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (serverRuntimeState, error) {
	var st serverRuntimeState
	//nolint:gosec // server state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
