package logger

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// active is the core every agent writes to, Init replaces it
	active atomic.Pointer[coreBox]

	root = zap.New(&swapCore{}, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
)

type coreBox struct {
	zapcore.Core
}

func init() {
	core, err := newCore(false)
	if err != nil {
		core = zapcore.NewNopCore()
	}
	setCore(core)
}

func newCore(development bool) (zapcore.Core, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Core(), nil
}

func setCore(core zapcore.Core) {
	active.Store(&coreBox{core})
}

// swapCore forwards to the active core, so agents created at package init
// follow a later Init.
type swapCore struct {
	fields []zapcore.Field
}

func (c *swapCore) current() zapcore.Core {
	core := active.Load().Core
	if len(c.fields) != 0 {
		return core.With(c.fields)
	}
	return core
}

func (c *swapCore) Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}

func (c *swapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &swapCore{fields: merged}
}

func (c *swapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *swapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.current().Write(ent, fields)
}

func (c *swapCore) Sync() error {
	return active.Load().Sync()
}

// Init sets the global level and output format. It applies to every agent,
// including those created before.
func Init(lvl string, development bool) error {
	if lvl != "" {
		if err := level.UnmarshalText([]byte(lvl)); err != nil {
			return errors.Wrapf(err, "invalid log level %s", lvl)
		}
	}
	core, err := newCore(development)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	setCore(core)
	return nil
}

type LogAgent struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

func NewLogAgent(name string) *LogAgent {
	l := root.Named(name)
	return &LogAgent{
		Logger: l,
		// the printf helpers below add one frame
		sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

func (l *LogAgent) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *LogAgent) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *LogAgent) Warnf(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *LogAgent) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
