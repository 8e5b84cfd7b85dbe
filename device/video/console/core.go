package console

import (
	"kdisplay/device/video/gfx"
	"strings"

	"go.uber.org/zap/zapcore"
)

// levelStyle describes how entries of a log level are tagged.
type levelStyle struct {
	tag                 string
	tagColor, bodyColor gfx.Color
}

func styleFor(level zapcore.Level) levelStyle {
	switch {
	case level < zapcore.InfoLevel:
		return levelStyle{"[-TRACE]", gfx.TraceLog, gfx.TraceLog}
	case level == zapcore.InfoLevel:
		return levelStyle{"[ INFO ]", gfx.White, gfx.White}
	case level == zapcore.WarnLevel:
		return levelStyle{"[ WARN ]", gfx.Yellow, gfx.BrightYellow}
	case level == zapcore.ErrorLevel:
		return levelStyle{"[ERROR!]", gfx.Red, gfx.BrightRed}
	default:
		return levelStyle{"[PANIC!]", gfx.Red, gfx.Red}
	}
}

// encoderConfig renders the message followed by its fields. The level is
// conveyed by the tag and color, so it is left out together with the
// timestamp and caller.
var encoderConfig = zapcore.EncoderConfig{
	MessageKey:       "msg",
	NameKey:          "logger",
	LineEnding:       "\n",
	ConsoleSeparator: " ",
	EncodeDuration:   zapcore.StringDurationEncoder,
	EncodeName:       zapcore.FullNameEncoder,
}

type core struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	out *Logger
}

// NewCore returns a zapcore.Core that prints log entries enabled by enab on
// out.
func NewCore(out *Logger, enab zapcore.LevelEnabler) zapcore.Core {
	return &core{
		LevelEnabler: enab,
		enc:          zapcore.NewConsoleEncoder(encoderConfig),
		out:          out,
	}
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	clone := &core{LevelEnabler: c.LevelEnabler, enc: c.enc.Clone(), out: c.out}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	style := styleFor(ent.Level)
	c.out.Log(style.tag, style.tagColor, style.bodyColor, msg)
	return nil
}

func (c *core) Sync() error {
	return nil
}
