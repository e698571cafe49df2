package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// consoleEncoder renders one calm line per entry:
//
//	warn  gather: atom collision  atom=sdk://pkg/foo
//
// No timestamps (Ninja already interleaves and timestamps build edges), no
// caller info, level only when it matters. Fields are appended as key=value.
type consoleEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newConsoleEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "name",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return &consoleEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

func (e *consoleEncoder) Clone() zapcore.Encoder {
	return &consoleEncoder{
		Encoder: e.Encoder.Clone(),
		pool:    e.pool,
	}
}

func (e *consoleEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := e.pool.Get()

	switch entry.Level {
	case zapcore.WarnLevel:
		line.AppendString("warning: ")
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		line.AppendString("error: ")
	}

	if entry.LoggerName != "" {
		line.AppendString(entry.LoggerName)
		line.AppendString(": ")
	}
	line.AppendString(entry.Message)

	for _, f := range fields {
		line.AppendString("  ")
		line.AppendString(f.Key)
		line.AppendByte('=')
		appendFieldValue(line, f)
	}
	line.AppendByte('\n')
	return line, nil
}

func appendFieldValue(line *buffer.Buffer, f zapcore.Field) {
	switch f.Type {
	case zapcore.StringType:
		line.AppendString(f.String)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		line.AppendInt(f.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		line.AppendUint(uint64(f.Integer))
	case zapcore.BoolType:
		line.AppendBool(f.Integer == 1)
	case zapcore.DurationType:
		line.AppendString(time.Duration(f.Integer).String())
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			line.AppendString(err.Error())
		}
	default:
		if f.Interface != nil {
			line.AppendString(fmt.Sprintf("%v", f.Interface))
		} else if f.String != "" {
			line.AppendString(f.String)
		} else {
			line.AppendInt(f.Integer)
		}
	}
}
