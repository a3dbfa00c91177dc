package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/meysam81/oneoffctl/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON lines instead of the coloured console output
	Color bool      // colorize console output
	Out   io.Writer // default os.Stderr
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	out      io.Writer = os.Stderr
	p        *printer.ColorPrinter
	curLevel = zapcore.InfoLevel
	colored  = true
	ready    atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(opts)
}

func configureLocked(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	curLevel = parseLevel(opts.Level)
	colored = opts.Color && !opts.JSON
	core := zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), curLevel)
	zlog = zap.New(core).Sugar()

	if p == nil {
		p = printer.NewColorPrinter()
	}

	ready.Store(true)
}

// SetLevel adjusts current level at runtime ("debug","info","warn","error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(Options{Level: level, Color: colored, Out: out})
}

// SetOutput replaces the logger writer (use io.Discard in tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	configureLocked(Options{Level: curLevel.String(), Color: colored, Out: w})
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Out returns the current output writer.
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, "✨ ", pick(func(c *printer.ColorPrinter) printer.Func { return c.Info }), msg, args)
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, "✅ ", pick(func(c *printer.ColorPrinter) printer.Func { return c.Success }), msg, args)
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, "⚠️ ", pick(func(c *printer.ColorPrinter) printer.Func { return c.Warning }), msg, args)
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, "❌ ", pick(func(c *printer.ColorPrinter) printer.Func { return c.Error }), msg, args)
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, "🛠️ ", pick(func(c *printer.ColorPrinter) printer.Func { return c.Debug }), msg, args)
}

// WarnInline writes a warning without a trailing newline (prompts).
func WarnInline(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	_, _ = io.WriteString(out, render("⚠️ ", p.Warning, msg, args))
}

// CreateTable returns a table bound to w, or to stdout when w is nil.
func CreateTable(w io.Writer, headers []string) *tablewriter.Table {
	if w == nil {
		w = os.Stdout
	}
	t := tablewriter.NewTable(w)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(b []byte) (int, error) { return wa.w.Write(b) }

func pick(f func(*printer.ColorPrinter) printer.Func) func() printer.Func {
	return func() printer.Func { return f(p) }
}

func emit(level zapcore.Level, prefix string, color func() printer.Func, msg string, args []interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if zlog == nil || p == nil || !curLevel.Enabled(level) {
		return
	}
	line := render(prefix, color(), msg, args)
	switch level {
	case zapcore.DebugLevel:
		zlog.Debug(line)
	case zapcore.WarnLevel:
		zlog.Warn(line)
	case zapcore.ErrorLevel:
		zlog.Error(line)
	default:
		zlog.Info(line)
	}
}

func render(prefix string, color printer.Func, msg string, args []interface{}) string {
	if colored {
		return color(prefix+msg, args...)
	}
	return printer.Plain(prefix+msg, args...)
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
